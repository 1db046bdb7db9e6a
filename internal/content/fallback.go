// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package content

import (
	"strings"
	"time"
)

// FallbackDataset is the built-in catalogue used when the remote source is
// unavailable or misconfigured.
//
// # Guarantees
//
// Every operation is total: no errors, no I/O, deterministic results. The
// dataset is immutable after construction; callers receive copies of slices
// where mutation could leak between requests.
type FallbackDataset struct {
	people     []Person
	categories []Category
	events     []TimelineEvent
	bySlug     map[string]int
}

// NewFallbackDataset builds the built-in catalogue.
func NewFallbackDataset() *FallbackDataset {
	scientists := Category{ID: "cat1", Name: "Scientists", Slug: "scientists", Description: "Pioneering minds in science and research", Icon: "🔬", Color: "#4F46E5", Count: 3}
	artists := Category{ID: "cat2", Name: "Artists", Slug: "artists", Description: "Creative visionaries and artists", Icon: "🎨", Color: "#DC2626", Count: 2}
	leaders := Category{ID: "cat3", Name: "Leaders", Slug: "leaders", Description: "Influential leaders and changemakers", Icon: "👑", Color: "#059669", Count: 1}

	// Creation timestamps are synthetic but strictly ordered so that
	// "newest first" queries stay deterministic.
	baseTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	createdAt := func(offset int) time.Time {
		return baseTime.Add(time.Duration(offset) * 24 * time.Hour)
	}

	people := []Person{
		{
			ID: "person1", Slug: "albert-einstein", Name: "Albert Einstein",
			Tagline:   "Theoretical physicist and philosopher of science",
			Biography: "Albert Einstein was a German-born theoretical physicist who is widely held to be one of the greatest and most influential scientists of all time.",
			Category:  &scientists,
			Achievements: []string{
				"Nobel Prize in Physics (1921)",
				"Theory of Relativity",
				"Mass-energy equivalence (E=mc²)",
			},
			Featured: true, ViewCount: 1250,
			BirthDate: "1879-03-14", DeathDate: "1955-04-18",
			Nationality: "German",
			Occupation:  []string{"Theoretical Physicist", "Philosopher"},
			Keywords:    []string{"relativity", "physics", "quantum", "Nobel Prize"},
			CreatedAt:   createdAt(1),
		},
		{
			ID: "person2", Slug: "marie-curie", Name: "Marie Curie",
			Tagline:   "Pioneering researcher on radioactivity",
			Biography: "Marie Curie was a Polish and naturalized-French physicist and chemist who conducted pioneering research on radioactivity.",
			Category:  &scientists,
			Achievements: []string{
				"First woman to win a Nobel Prize",
				"First person to win Nobel Prizes in two different sciences",
				"Discovery of radium and polonium",
			},
			Featured: true, ViewCount: 980,
			BirthDate: "1867-11-07", DeathDate: "1934-07-04",
			Nationality: "Polish-French",
			Occupation:  []string{"Physicist", "Chemist"},
			Keywords:    []string{"radioactivity", "Nobel Prize", "radium", "chemistry"},
			CreatedAt:   createdAt(2),
		},
		{
			ID: "person3", Slug: "leonardo-da-vinci", Name: "Leonardo da Vinci",
			Tagline:   "Renaissance polymath and artist",
			Biography: "Leonardo da Vinci was an Italian polymath of the High Renaissance who was active as a painter, draughtsman, engineer, scientist, theorist, sculptor, and architect.",
			Category:  &artists,
			Achievements: []string{
				"The Mona Lisa",
				"The Last Supper",
				"Vitruvian Man",
				"Flying machine designs",
			},
			Featured: true, ViewCount: 1500,
			BirthDate: "1452-04-15", DeathDate: "1519-05-02",
			Nationality: "Italian",
			Occupation:  []string{"Artist", "Inventor", "Scientist"},
			Keywords:    []string{"Renaissance", "painting", "invention", "art"},
			CreatedAt:   createdAt(3),
		},
		{
			ID: "person4", Slug: "frida-kahlo", Name: "Frida Kahlo",
			Tagline:   "Mexican painter known for self-portraits",
			Biography: "Frida Kahlo was a Mexican painter known for her many portraits, self-portraits, and works inspired by the nature and artifacts of Mexico.",
			Category:  &artists,
			Achievements: []string{
				"Self-Portrait with Thorn Necklace and Hummingbird",
				"The Two Fridas",
				"Diego and I",
			},
			Featured: false, ViewCount: 750,
			BirthDate: "1907-07-06", DeathDate: "1954-07-13",
			Nationality: "Mexican",
			Occupation:  []string{"Painter"},
			Keywords:    []string{"self-portrait", "Mexican art", "surrealism"},
			CreatedAt:   createdAt(4),
		},
		{
			ID: "person5", Slug: "nelson-mandela", Name: "Nelson Mandela",
			Tagline:   "Anti-apartheid activist and former President of South Africa",
			Biography: "Nelson Mandela was a South African anti-apartheid activist who served as the first president of South Africa from 1994 to 1999.",
			Category:  &leaders,
			Achievements: []string{
				"Nobel Peace Prize (1993)",
				"First Black President of South Africa",
				"Ended apartheid",
			},
			Featured: true, ViewCount: 2100,
			BirthDate: "1918-07-18", DeathDate: "2013-12-05",
			Nationality: "South African",
			Occupation:  []string{"Activist", "Politician", "President"},
			Keywords:    []string{"apartheid", "peace", "freedom", "justice"},
			CreatedAt:   createdAt(5),
		},
		{
			ID: "person6", Slug: "stephen-hawking", Name: "Stephen Hawking",
			Tagline:   "Theoretical physicist and cosmologist",
			Biography: "Stephen Hawking was an English theoretical physicist, cosmologist, and author who was director of research at the Centre for Theoretical Cosmology.",
			Category:  &scientists,
			Achievements: []string{
				"A Brief History of Time",
				"Hawking radiation theory",
				"Black hole research",
			},
			Featured: false, ViewCount: 890,
			BirthDate: "1942-01-08", DeathDate: "2018-03-14",
			Nationality: "British",
			Occupation:  []string{"Theoretical Physicist", "Cosmologist", "Author"},
			Keywords:    []string{"black holes", "cosmology", "theoretical physics"},
			CreatedAt:   createdAt(6),
		},
	}

	events := []TimelineEvent{
		{ID: "event1", PersonSlug: "albert-einstein", Title: "Annus Mirabilis papers", Date: "1905-06-30", Description: "Published four groundbreaking papers on the photoelectric effect, Brownian motion, special relativity, and mass-energy equivalence.", Location: "Bern, Switzerland"},
		{ID: "event2", PersonSlug: "albert-einstein", Title: "Nobel Prize in Physics", Date: "1921-11-09", Description: "Awarded for his discovery of the law of the photoelectric effect.", Location: "Stockholm, Sweden"},
		{ID: "event3", PersonSlug: "marie-curie", Title: "Discovery of radium", Date: "1898-12-21", Description: "Announced the discovery of a new element, radium, together with Pierre Curie.", Location: "Paris, France"},
		{ID: "event4", PersonSlug: "nelson-mandela", Title: "Released from prison", Date: "1990-02-11", Description: "Walked free after 27 years of imprisonment.", Location: "Paarl, South Africa"},
		{ID: "event5", PersonSlug: "nelson-mandela", Title: "Elected President", Date: "1994-05-10", Description: "Inaugurated as the first president elected in a fully representative democratic election.", Location: "Pretoria, South Africa"},
	}

	bySlug := make(map[string]int, len(people))
	for i, p := range people {
		bySlug[p.Slug] = i
	}

	return &FallbackDataset{
		people:     people,
		categories: []Category{scientists, artists, leaders},
		events:     events,
		bySlug:     bySlug,
	}
}

// # Read Operations

// AllPeople returns every person, newest first.
func (d *FallbackDataset) AllPeople() Collection[Person] {
	items := make([]Person, len(d.people))
	copy(items, d.people)

	// Mirror the remote source's -sys.createdAt ordering
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	return Collection[Person]{Total: len(items), Items: items}
}

// PersonBySlug returns the person with the given slug, or nil.
func (d *FallbackDataset) PersonBySlug(slug string) *Person {
	i, ok := d.bySlug[slug]
	if !ok {
		return nil
	}
	person := d.people[i]
	return &person
}

// PeopleByCategory returns people whose category matches the given slug.
// An unknown slug yields an empty collection.
func (d *FallbackDataset) PeopleByCategory(categorySlug string) Collection[Person] {
	var items []Person
	for _, p := range d.people {
		if p.Category != nil && p.Category.Slug == categorySlug {
			items = append(items, p)
		}
	}
	return Collection[Person]{Total: len(items), Items: items}
}

// SearchPeople matches the query case-insensitively against names, taglines,
// and keywords. An empty query matches nothing.
func (d *FallbackDataset) SearchPeople(query string) Collection[Person] {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return Collection[Person]{}
	}

	var items []Person
	for _, p := range d.people {
		if matchesTerm(&p, term) {
			items = append(items, p)
		}
	}
	return Collection[Person]{Total: len(items), Items: items}
}

// FeaturedPeople returns up to limit featured people. Total reflects the full
// featured count even when limited.
func (d *FallbackDataset) FeaturedPeople(limit int) Collection[Person] {
	var featured []Person
	for _, p := range d.people {
		if p.Featured {
			featured = append(featured, p)
		}
	}

	total := len(featured)
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}

	return Collection[Person]{Total: total, Items: featured}
}

// AllCategories returns every category, ordered by name.
func (d *FallbackDataset) AllCategories() Collection[Category] {
	items := make([]Category, len(d.categories))
	copy(items, d.categories)

	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Name < items[j-1].Name; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}

	return Collection[Category]{Total: len(items), Items: items}
}

// TimelineEvents returns the milestones for one person, oldest first.
func (d *FallbackDataset) TimelineEvents(personSlug string) Collection[TimelineEvent] {
	var items []TimelineEvent
	for _, e := range d.events {
		if e.PersonSlug == personSlug {
			items = append(items, e)
		}
	}
	return Collection[TimelineEvent]{Total: len(items), Items: items}
}

// matchesTerm checks one person against a lowercased search term.
func matchesTerm(p *Person, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Tagline), term) {
		return true
	}
	for _, keyword := range p.Keywords {
		if strings.Contains(strings.ToLower(keyword), term) {
			return true
		}
	}
	return false
}
