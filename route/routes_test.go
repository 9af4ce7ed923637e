package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"baristasalary/database"
	"baristasalary/model"
	"baristasalary/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type apiTest struct {
	t       *testing.T
	router  *gin.Engine
	admin   string
	manager string
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, database.EnsureAdmin(db, "admin", "s3cret"))
	hash, err := bcrypt.GenerateFromPassword([]byte("m4nager"), bcrypt.MinCost)
	require.NoError(t, err)
	manager := model.User{Username: "manager", Password: string(hash), Role: model.Manager}
	require.NoError(t, db.Create(&manager).Error)

	tokens := utils.NewTokenManager("test-secret", 15*time.Minute, 12*time.Hour)
	router := gin.New()
	router.Use(utils.RequestLogger())
	APIRoutes(router, db, tokens)

	api := &apiTest{t: t, router: router}
	api.admin = api.login("admin", "s3cret")
	api.manager = api.login("manager", "m4nager")
	return api
}

func (a *apiTest) login(username, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.AccessToken
}

func (a *apiTest) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// call performs the request, checks the status and decodes the data field
// into out when out is not nil.
func (a *apiTest) call(method, path, token string, body interface{}, wantStatus int, out interface{}) envelope {
	a.t.Helper()
	w := a.do(method, path, token, body)
	require.Equal(a.t, wantStatus, w.Code, w.Body.String())

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil {
		require.NoError(a.t, json.Unmarshal(env.Data, out))
	}
	return env
}

func (a *apiTest) createCafe(name string) model.Cafe {
	a.t.Helper()
	var cafe model.Cafe
	a.call(http.MethodPost, "/api/cafes", a.admin, gin.H{"name": name}, http.StatusCreated, &cafe)
	return cafe
}

func (a *apiTest) createBarista(name string) model.Barista {
	a.t.Helper()
	var barista model.Barista
	a.call(http.MethodPost, "/api/baristas", a.admin, gin.H{"full_name": name}, http.StatusCreated, &barista)
	return barista
}

func (a *apiTest) createRate(cafe model.Cafe, barista model.Barista) model.Rate {
	a.t.Helper()
	var rate model.Rate
	a.call(http.MethodPost, "/api/rates", a.admin, gin.H{
		"cafe_id":    cafe.ID,
		"barista_id": barista.ID,
		"min_wage":   500,
		"percent":    10,
		"additive":   50,
	}, http.StatusCreated, &rate)
	return rate
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newAPITest(t)

	w := api.do(http.MethodGet, "/api/cafes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/api/summary", api.manager, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPI_ManagerCannotEditCatalog(t *testing.T) {
	api := newAPITest(t)

	w := api.do(http.MethodPost, "/api/cafes", api.manager, gin.H{"name": "SuperCafe"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodGet, "/api/rates", api.manager, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAPI_ShiftIncomeSalaryFlow(t *testing.T) {
	api := newAPITest(t)
	cafe := api.createCafe("SuperCafe")
	barista := api.createBarista("John Smith")
	api.createRate(cafe, barista)

	var shift model.Shift
	api.call(http.MethodPost, "/api/shifts", api.manager, gin.H{
		"date":       "2022-02-24",
		"cafe_id":    cafe.ID,
		"barista_id": barista.ID,
	}, http.StatusCreated, &shift)
	assert.Nil(t, shift.Salary)

	var created struct {
		Income model.Income `json:"income"`
		Shift  model.Shift  `json:"shift"`
	}
	api.call(http.MethodPost, "/api/incomes", api.manager, gin.H{
		"date":    "2022-02-24",
		"cafe_id": cafe.ID,
		"income":  5430,
	}, http.StatusCreated, &created)
	require.NotNil(t, created.Shift.Salary)
	assert.Equal(t, 593, *created.Shift.Salary)
	assert.Equal(t, shift.ID, created.Shift.ID)

	var salary struct {
		Salary int `json:"salary"`
		Shifts []struct {
			ShiftID uint `json:"shift_id"`
			Salary  *int `json:"salary"`
		} `json:"shifts"`
	}
	path := fmt.Sprintf("/api/baristas/%d?start_date=2022-02-20&end_date=2022-02-28", barista.ID)
	api.call(http.MethodGet, path, api.manager, nil, http.StatusOK, &salary)
	assert.Equal(t, 593, salary.Salary)
	require.Len(t, salary.Shifts, 1)

	var incomeReport struct {
		TotalIncome int `json:"total_income"`
		IncomeArray []struct {
			Date   string `json:"date"`
			Income int    `json:"income"`
		} `json:"income_array"`
	}
	path = fmt.Sprintf("/api/cafes/%d?start_date=2022-02-20&end_date=2022-02-28", cafe.ID)
	api.call(http.MethodGet, path, api.manager, nil, http.StatusOK, &incomeReport)
	assert.Equal(t, 5430, incomeReport.TotalIncome)
	assert.Len(t, incomeReport.IncomeArray, 9)

	var updated struct {
		Shift model.Shift `json:"shift"`
	}
	path = fmt.Sprintf("/api/incomes/%d", created.Income.ID)
	api.call(http.MethodPut, path, api.manager, gin.H{"income": 6430}, http.StatusOK, &updated)
	require.NotNil(t, updated.Shift.Salary)
	assert.Equal(t, 693, *updated.Shift.Salary)

	api.call(http.MethodDelete, path, api.manager, nil, http.StatusForbidden, nil)
	api.call(http.MethodDelete, path, api.admin, nil, http.StatusOK, nil)
}

func TestAPI_ErrorStatuses(t *testing.T) {
	api := newAPITest(t)
	cafe := api.createCafe("SuperCafe")
	barista := api.createBarista("John Smith")

	env := api.call(http.MethodPost, "/api/shifts", api.manager, gin.H{
		"date":       "2022-02-24",
		"cafe_id":    cafe.ID,
		"barista_id": barista.ID,
	}, http.StatusBadRequest, nil)
	assert.Equal(t, "Barista John Smith has no rate for 'SuperCafe' cafe!", env.Error)

	env = api.call(http.MethodPost, "/api/incomes", api.manager, gin.H{
		"date":    "2022-02-24",
		"cafe_id": cafe.ID,
		"income":  1000,
	}, http.StatusBadRequest, nil)
	assert.Equal(t, "There is no barista on shift at the 'SuperCafe' Cafe on 2022-02-24!", env.Error)

	api.call(http.MethodPost, "/api/cafes", api.admin, gin.H{"name": "SuperCafe"}, http.StatusConflict, nil)
	api.call(http.MethodGet, "/api/cafes/999", api.manager, nil, http.StatusNotFound, nil)
	api.call(http.MethodGet, "/api/cafes/abc", api.manager, nil, http.StatusBadRequest, nil)
	api.call(http.MethodGet, "/api/shifts?start_date=2022-03-01&end_date=2022-02-01", api.manager, nil, http.StatusBadRequest, nil)
	api.call(http.MethodPost, "/api/shifts", api.manager, gin.H{"date": "24.02.2022", "cafe_id": cafe.ID, "barista_id": barista.ID}, http.StatusBadRequest, nil)
	api.call(http.MethodDelete, "/api/shifts/999", api.manager, nil, http.StatusNotFound, nil)

	api.createRate(cafe, barista)
	api.call(http.MethodPost, "/api/rates", api.admin, gin.H{
		"cafe_id": cafe.ID, "barista_id": barista.ID, "min_wage": 1, "percent": 1, "additive": 1,
	}, http.StatusConflict, nil)
}

func TestAPI_ScheduleAndRateGrid(t *testing.T) {
	api := newAPITest(t)
	super := api.createCafe("SuperCafe")
	mega := api.createCafe("MegaCafe")
	john := api.createBarista("John Smith")
	api.createBarista("Mr Martin")
	api.createRate(mega, john)

	api.call(http.MethodPost, "/api/shifts", api.manager, gin.H{
		"date": "2022-02-24", "cafe_id": mega.ID, "barista_id": john.ID,
	}, http.StatusCreated, nil)

	var schedule struct {
		ColumnHeaders []string `json:"column_headers"`
		Rows          []struct {
			Date  string `json:"date"`
			Cells []*struct {
				Name string `json:"name"`
			} `json:"cells"`
		} `json:"rows"`
	}
	api.call(http.MethodGet, "/api/shifts?start_date=2022-02-23&end_date=2022-02-25", api.manager, nil, http.StatusOK, &schedule)
	assert.Equal(t, []string{super.Name, mega.Name}, schedule.ColumnHeaders)
	require.Len(t, schedule.Rows, 3)
	assert.Nil(t, schedule.Rows[1].Cells[0])
	require.NotNil(t, schedule.Rows[1].Cells[1])
	assert.Equal(t, "John Smith", schedule.Rows[1].Cells[1].Name)

	var grid struct {
		CafeList []string `json:"cafe_list"`
		Rows     []struct {
			FullName string `json:"full_name"`
		} `json:"rows"`
	}
	api.call(http.MethodGet, "/api/baristas", api.manager, nil, http.StatusOK, &grid)
	assert.Equal(t, []string{"SuperCafe", "MegaCafe"}, grid.CafeList)
	assert.Len(t, grid.Rows, 2)

	var summary struct {
		Cafes    int `json:"num_cafes"`
		Baristas int `json:"num_baristas"`
	}
	api.call(http.MethodGet, "/api/summary", api.manager, nil, http.StatusOK, &summary)
	assert.Equal(t, 2, summary.Cafes)
	assert.Equal(t, 2, summary.Baristas)
}

func TestAPI_ExcelExport(t *testing.T) {
	api := newAPITest(t)
	cafe := api.createCafe("SuperCafe")

	for _, path := range []string{
		"/api/shifts/schedule.xlsx?start_date=2022-02-20&end_date=2022-02-28",
		"/api/baristas/rates.xlsx",
		fmt.Sprintf("/api/cafes/%d/incomes.xlsx", cafe.ID),
	} {
		w := api.do(http.MethodGet, path, api.manager, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

		f, err := excelize.OpenReader(w.Body)
		require.NoError(t, err, path)
		assert.Len(t, f.GetSheetList(), 1)
		f.Close()
	}
}

func TestAPI_ImportIncomes(t *testing.T) {
	api := newAPITest(t)
	cafe := api.createCafe("SuperCafe")
	barista := api.createBarista("John Smith")
	api.createRate(cafe, barista)
	api.call(http.MethodPost, "/api/shifts", api.manager, gin.H{
		"date": "2022-02-24", "cafe_id": cafe.ID, "barista_id": barista.ID,
	}, http.StatusCreated, nil)

	xl := excelize.NewFile()
	for i, row := range [][]interface{}{
		{"date", "income"},
		{"2022-02-24", 5430},
		{"2022-02-25", 1000},
	} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, xl.SetSheetRow("Sheet1", cell, &row))
	}
	var file bytes.Buffer
	require.NoError(t, xl.Write(&file))
	xl.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "incomes.xlsx")
	require.NoError(t, err)
	_, err = part.Write(file.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/cafes/%d/incomes/import", cafe.ID), &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+api.manager)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var res struct {
		Imported int `json:"imported"`
		Failed   []struct {
			Row int `json:"row"`
		} `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 3, res.Failed[0].Row)
}
