package domain

// Gender enumerates the genders a directory entry may carry.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Domain is the business area a user works in.
type Domain string

const (
	DomainSales       Domain = "Sales"
	DomainFinance     Domain = "Finance"
	DomainMarketing   Domain = "Marketing"
	DomainIT          Domain = "IT"
	DomainUIDesigning Domain = "UI Designing"
	DomainManagement  Domain = "Management"
)

// Domains lists every known domain in display order.
var Domains = []Domain{
	DomainSales,
	DomainFinance,
	DomainMarketing,
	DomainIT,
	DomainUIDesigning,
	DomainManagement,
}

// Genders lists every known gender in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// ParseDomain matches s against the known domains, ignoring case.
func ParseDomain(s string) (Domain, bool) {
	for _, d := range Domains {
		if equalFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// ParseGender matches s against the known genders, ignoring case.
func ParseGender(s string) (Gender, bool) {
	for _, g := range Genders {
		if equalFold(string(g), s) {
			return g, true
		}
	}
	return "", false
}

// User is the typed view of a directory record used by the client.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Gender    Gender `json:"gender"`
	Avatar    string `json:"avatar"`
	Domain    Domain `json:"domain"`
	Available bool   `json:"available"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
