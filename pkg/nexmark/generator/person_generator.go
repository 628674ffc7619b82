package generator

import (
	"fmt"

	"golang.org/x/exp/rand"

	"nexmark-gen/pkg/nexmark/ntypes"
)

const HOT_BIDDER_RATIO uint64 = 100

var (
	US_STATES   = []string{"AZ", "CA", "ID", "OR", "WA", "WY"}
	US_CITIES   = []string{"Phoenix", "Los Angeles", "San Francisco", "Boise", "Portland", "Bend", "Redmond", "Seattle", "Kent", "Cheyenne"}
	FIRST_NAMES = []string{"Peter", "Paul", "Luke", "John", "Saul", "Vicky", "Kate", "Julie", "Sarah", "Deiter", "Walter"}
	LAST_NAMES  = []string{"Shultz", "Abrams", "Spencer", "White", "Bartels", "Walton", "Smith", "Jones", "Noris"}
)

func NextPerson(eventId uint64, random *rand.Rand, timestamp int64, config *GeneratorConfig) *ntypes.Person {
	id := config.Space.LastBase0PersonId(eventId) + FIRST_PERSON_ID
	name := nextPersonName(random)
	email := nextEmail(random)
	creditCard := nextCreditCard(random)
	city := US_CITIES[random.Intn(len(US_CITIES))]
	state := US_STATES[random.Intn(len(US_STATES))]
	currentSize := ntypes.PersonAccountedSize(name, email, creditCard, city, state)
	return &ntypes.Person{
		ID:           id,
		Name:         name,
		EmailAddress: email,
		CreditCard:   creditCard,
		City:         city,
		State:        state,
		DateTime:     timestamp,
		Extra:        NextExtra(random, uint32(currentSize), config.Configuration.AvgPersonByteSize),
	}
}

// NextBase0PersonId samples an already created person among the most recent active ones.
func NextBase0PersonId(eventId uint64, random *rand.Rand, config *GeneratorConfig) uint64 {
	window := uint64(config.Configuration.NumActivePeople) + uint64(config.Configuration.PersonIdLead)
	return nextInWindow(random, config.Space.LastBase0PersonId(eventId), window)
}

// hotBase0PersonId buckets the latest person id so that a few ids are reused heavily.
func hotBase0PersonId(eventId uint64, config *GeneratorConfig, bucket uint64) uint64 {
	return config.Space.LastBase0PersonId(eventId) / bucket * bucket
}

func nextPersonName(random *rand.Rand) string {
	return FIRST_NAMES[random.Intn(len(FIRST_NAMES))] + " " + LAST_NAMES[random.Intn(len(LAST_NAMES))]
}

func nextEmail(random *rand.Rand) string {
	return NextString(random, 7) + "@" + NextString(random, 5) + ".com"
}

func nextCreditCard(random *rand.Rand) string {
	return fmt.Sprintf("%04d %04d %04d %04d",
		random.Intn(10000), random.Intn(10000), random.Intn(10000), random.Intn(10000))
}
