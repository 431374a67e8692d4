package ledger

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
)

// Provider yields a realistic value per semantic field kind. The pipeline
// only talks to this interface; tests may substitute their own.
type Provider interface {
	FirstName() string
	LastName() string
	Email() string
	CompanyName() string
	CompanyEmail() string
	FreeEmailDomain() string
	Phone() string
	StreetAddress() string
	FullAddress() string
	City() string
	Country() string
	PostalCode() string
	CatchPhrase() string
	Sentence() string
	Paragraph() string
	TimeBetween(start, end time.Time) time.Time
}

var (
	companySuffixes = []string{
		"Group", "Holdings", "Industries", "Logistics", "Trading",
		"Supply Co", "Distribution", "Partners",
	}
	freeEmailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}
	countries        = []string{
		"United States", "Canada", "Mexico", "Brazil", "United Kingdom",
		"Germany", "France", "Spain", "Italy", "Japan", "Australia", "India",
	}
	catchAdjectives = []string{
		"Ergonomic", "Rustic", "Sleek", "Durable", "Compact", "Premium",
		"Lightweight", "Modular", "Refined", "Practical",
	}
	catchNouns = []string{
		"Steel Chair", "Cotton Shirt", "Aluminum Lamp", "Oak Desk",
		"Ceramic Mug", "Leather Wallet", "Bamboo Organizer", "Wool Blanket",
		"Glass Bottle", "Canvas Backpack",
	}
)

// NewRand builds the run's random source. Zero seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

type fakeProvider struct {
	rng *rand.Rand
}

// NewProvider builds the faker-backed provider. A non-zero seed pins both
// the faker library and the provider's own random source for reproducible
// fixtures.
func NewProvider(seed int64) Provider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		faker.SetRandomSource(rand.NewSource(seed))
	}
	return &fakeProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *fakeProvider) pick(list []string) string {
	return list[p.rng.Intn(len(list))]
}

func (p *fakeProvider) FirstName() string { return faker.FirstName() }
func (p *fakeProvider) LastName() string  { return faker.LastName() }
func (p *fakeProvider) Email() string     { return faker.Email() }
func (p *fakeProvider) Phone() string     { return faker.Phonenumber() }
func (p *fakeProvider) Sentence() string  { return faker.Sentence() }
func (p *fakeProvider) Paragraph() string { return faker.Paragraph() }

func (p *fakeProvider) CompanyName() string {
	return faker.LastName() + " " + p.pick(companySuffixes)
}

func (p *fakeProvider) CompanyEmail() string {
	slug := strings.ToLower(p.CompanyName())
	slug = strings.ReplaceAll(slug, " ", "")
	return "contact@" + slug + ".com"
}

func (p *fakeProvider) FreeEmailDomain() string { return p.pick(freeEmailDomains) }

func (p *fakeProvider) StreetAddress() string {
	return faker.GetRealAddress().Address
}

func (p *fakeProvider) FullAddress() string {
	a := faker.GetRealAddress()
	return fmt.Sprintf("%s, %s, %s %s", a.Address, a.City, a.State, a.PostalCode)
}

func (p *fakeProvider) City() string       { return faker.GetRealAddress().City }
func (p *fakeProvider) Country() string    { return p.pick(countries) }
func (p *fakeProvider) PostalCode() string { return faker.GetRealAddress().PostalCode }

func (p *fakeProvider) CatchPhrase() string {
	return p.pick(catchAdjectives) + " " + p.pick(catchNouns)
}

func (p *fakeProvider) TimeBetween(start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	delta := end.Unix() - start.Unix()
	return time.Unix(start.Unix()+p.rng.Int63n(delta), 0).UTC()
}
