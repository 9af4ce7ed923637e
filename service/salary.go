package service

import "baristasalary/model"

// ComputeSalary returns the barista's pay for one shift. Below the minimum
// wage the minimum is paid; above it the barista gets percent of the income
// plus additive, truncated to an integer, and never less than minWage.
func ComputeSalary(income, minWage, percent, additive int) int {
	if income < minWage {
		return minWage
	}
	salary := int(float64(income)/100*float64(percent) + float64(additive))
	if salary < minWage {
		return minWage
	}
	return salary
}

func SalaryFor(rate model.Rate, income int) int {
	return ComputeSalary(income, rate.MinWage, rate.Percent, rate.Additive)
}
