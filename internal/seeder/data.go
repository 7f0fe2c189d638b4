// internal/seeder/data.go
//
// Static vocabularies and random helpers for generated demo data. The shape
// of every dataset is deterministic; only the values vary.
package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"demo-pool/internal/model"
)

const identChars = "abcdefghijklmnopqrstuvwxyz0123456789"

func randString(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(identChars[rand.Intn(len(identChars))])
	}
	return b.String()
}

// pick returns a uniformly random element of a non-empty slice.
func pick[T any](list []T) T {
	return list[rand.Intn(len(list))]
}

// sample returns up to n distinct elements of list in random order.
func sample[T any](list []T, n int) []T {
	if n > len(list) {
		n = len(list)
	}
	idx := rand.Perm(len(list))[:n]
	out := make([]T, n)
	for i, j := range idx {
		out[i] = list[j]
	}
	return out
}

var companyNames = []string{
	"Acme Corporation", "Globex Industries", "Initech Solutions",
	"Umbrella Trading", "Stark Distribution", "Wayne Logistics",
	"Pied Piper Labs", "Hooli Ventures",
}

var brandNames = []string{
	"Northwind", "Contoso", "Fabrikam", "Adventure Works",
	"Tailspin", "Wingtip", "Proseware", "Lucerne",
}

var shopCategories = []string{
	"Electronics", "Home & Garden", "Sports", "Clothing",
	"Books", "Toys", "Office", "Outdoors",
}

var productAdjectives = []string{
	"Compact", "Deluxe", "Classic", "Portable", "Wireless",
	"Ergonomic", "Premium", "Rugged", "Smart", "Eco",
}

var productNouns = []string{
	"Speaker", "Backpack", "Lamp", "Keyboard", "Bottle",
	"Notebook", "Headphones", "Chair", "Camera", "Watch",
}

func productName() string {
	return fmt.Sprintf("%s %s", pick(productAdjectives), pick(productNouns))
}

var firstNames = []string{
	"Ava", "Ben", "Clara", "Daniel", "Elena", "Felix",
	"Grace", "Hassan", "Ines", "Jonas", "Kira", "Liam",
	"Mara", "Noah", "Olivia", "Pavel",
}

var lastNames = []string{
	"Almeida", "Becker", "Chen", "Dubois", "Eriksen", "Fischer",
	"Garcia", "Haddad", "Ivanov", "Johnson", "Kowalski", "Larsen",
	"Moreau", "Nguyen", "Okafor", "Petrov",
}

var streets = []string{
	"Main Street", "Oak Avenue", "River Road", "Hill Lane",
	"Station Road", "Park Drive", "Market Square", "Elm Court",
}

var cities = []string{
	"Springfield", "Riverton", "Lakeside", "Fairview",
	"Georgetown", "Ashland", "Milton", "Clayton",
}

var countries = []string{"US", "DE", "FR", "GB", "NL", "ES"}

var orderStatuses = []string{
	model.OrderNew, model.OrderProcessing, model.OrderShipped,
	model.OrderDelivered, model.OrderCancelled,
}

var paymentProviders = []string{"stripe", "paypal"}

var paymentMethods = []string{"credit_card", "bank_transfer", "paypal"}

var blogCategories = []string{
	"Announcements", "Engineering", "Product", "Community", "Tutorials",
}

var postTitleOpeners = []string{
	"Getting Started with", "A Deep Dive into", "Five Lessons from",
	"The Future of", "Why We Love", "Behind the Scenes of",
}

var postTitleTopics = []string{
	"Inventory Management", "Customer Analytics", "Order Fulfilment",
	"Seasonal Sales", "Our New Catalog", "Warehouse Automation",
}

func postTitle() string {
	return fmt.Sprintf("%s %s", pick(postTitleOpeners), pick(postTitleTopics))
}

var loremSentences = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	"Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco.",
	"Duis aute irure dolor in reprehenderit in voluptate velit.",
	"Excepteur sint occaecat cupidatat non proident.",
}

func loremBody() string {
	n := 3 + rand.Intn(4)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = pick(loremSentences)
	}
	return strings.Join(parts, " ")
}

var commentBodies = []string{
	"Great read, thanks for sharing!",
	"This was exactly what I was looking for.",
	"Interesting perspective, I had not considered that.",
	"Looking forward to the follow-up post.",
	"Could you expand on the second point?",
}

var linkTitles = []string{
	"Documentation", "Release Notes", "Community Forum",
	"Status Page", "Support Portal", "Changelog",
}

func randomCustomer(wsID uuid.UUID) *model.Customer {
	first, last := pick(firstNames), pick(lastNames)
	c := &model.Customer{
		ID:          uuid.New(),
		WorkspaceID: wsID,
		Name:        fmt.Sprintf("%s %s", first, last),
		Email:       fmt.Sprintf("%s.%s.%s@example.net", strings.ToLower(first), strings.ToLower(last), randString(4)),
		Phone:       fmt.Sprintf("+1-555-%04d", rand.Intn(10000)),
	}
	if rand.Intn(4) > 0 { // most customers have a birthday on file
		bday := time.Date(1960+rand.Intn(45), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC)
		c.Birthday = &bday
	}
	return c
}

func randomAddress(wsID uuid.UUID) *model.Address {
	return &model.Address{
		ID:          uuid.New(),
		WorkspaceID: wsID,
		Street:      fmt.Sprintf("%d %s", 1+rand.Intn(999), pick(streets)),
		City:        pick(cities),
		Zip:         fmt.Sprintf("%05d", rand.Intn(100000)),
		Country:     pick(countries),
	}
}
