package domain

// WelcomeMailer dispatches transactional registration emails. Callers must
// treat dispatch as best-effort: failures are logged, never propagated to
// the registration response.
type WelcomeMailer interface {
	SendTalentWelcome(fullName, email string) error
	SendCompanyWelcome(companyName, contactPerson, email string) error
	IsConfigured() bool
}
