package service

import (
	"math/rand"

	"healthspot/internal/domain/entity"
)

// InsuranceProvider is a payer a provider may accept.
type InsuranceProvider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InsuranceProviders is the fixed payer catalog exposed to clients and used
// to filter search results.
var InsuranceProviders = []InsuranceProvider{
	{ID: "medicare", Name: "Medicare"},
	{ID: "medicaid", Name: "Medicaid"},
	{ID: "bluecross", Name: "Blue Cross Blue Shield"},
	{ID: "aetna", Name: "Aetna"},
	{ID: "cigna", Name: "Cigna"},
	{ID: "united", Name: "UnitedHealthcare"},
	{ID: "humana", Name: "Humana"},
	{ID: "tricare", Name: "TRICARE"},
	{ID: "kaiser", Name: "Kaiser Permanente"},
	{ID: "anthem", Name: "Anthem"},
}

// GenerateRandomInsuranceData assigns a random subset of payers to a
// provider. This is demo data: no real payer directory is wired up, so new
// providers get plausible placeholder coverage until one is.
func GenerateRandomInsuranceData() []string {
	count := 2 + rand.Intn(5)
	if count > len(InsuranceProviders) {
		count = len(InsuranceProviders)
	}

	picked := rand.Perm(len(InsuranceProviders))[:count]
	accepted := make([]string, 0, count)
	for _, i := range picked {
		accepted = append(accepted, InsuranceProviders[i].ID)
	}
	return accepted
}

// CheckInsuranceAcceptance reports whether the provider accepts at least one
// of the requested payers. An empty request means the caller does not filter
// by insurance, so it always passes.
func CheckInsuranceAcceptance(provider *entity.Provider, insuranceIDs []string) bool {
	if len(insuranceIDs) == 0 {
		return true
	}
	for _, id := range insuranceIDs {
		if provider.InsuranceAccepted.Contains(id) {
			return true
		}
	}
	return false
}
