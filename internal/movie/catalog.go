package movie

import "fmt"

// Catalog maps titles to movies and remembers insertion order.
// The zero value is an empty, usable catalog.
type Catalog struct {
	order   []string
	byTitle map[string]Movie
}

// NewCatalog returns a catalog containing movies in the given order.
// It fails on the first duplicate title.
func NewCatalog(movies ...Movie) (*Catalog, error) {
	c := &Catalog{}
	for _, m := range movies {
		if !c.Insert(m) {
			return nil, fmt.Errorf("duplicate title %q", m.Title)
		}
	}
	return c, nil
}

// Len reports the number of movies.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Has reports whether title is a key of the catalog.
func (c *Catalog) Has(title string) bool {
	if c == nil {
		return false
	}
	_, ok := c.byTitle[title]
	return ok
}

// Get returns the movie stored under title.
func (c *Catalog) Get(title string) (Movie, bool) {
	if c == nil {
		return Movie{}, false
	}
	m, ok := c.byTitle[title]
	return m, ok
}

// Titles returns the titles in insertion order.
func (c *Catalog) Titles() []string {
	if c == nil {
		return []string{}
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Movies returns a copy of every movie in insertion order.
func (c *Catalog) Movies() []Movie {
	if c == nil {
		return []Movie{}
	}
	out := make([]Movie, 0, len(c.order))
	for _, title := range c.order {
		out = append(out, c.byTitle[title])
	}
	return out
}

// Insert appends m unless its title is already present.
func (c *Catalog) Insert(m Movie) bool {
	if c.byTitle == nil {
		c.byTitle = make(map[string]Movie)
	}
	if _, exists := c.byTitle[m.Title]; exists {
		return false
	}
	c.byTitle[m.Title] = m
	c.order = append(c.order, m.Title)
	return true
}

// SetRating overwrites the rating of an existing title.
func (c *Catalog) SetRating(title string, rating float64) bool {
	m, ok := c.Get(title)
	if !ok {
		return false
	}
	m.Rating = rating
	c.byTitle[title] = m
	return true
}

// Remove deletes title. Remaining titles keep their relative order.
func (c *Catalog) Remove(title string) bool {
	if !c.Has(title) {
		return false
	}
	delete(c.byTitle, title)
	for i, t := range c.order {
		if t == title {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Clone returns an independent copy.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{}
	if c == nil || len(c.order) == 0 {
		return out
	}
	out.order = make([]string, len(c.order))
	copy(out.order, c.order)
	out.byTitle = make(map[string]Movie, len(c.byTitle))
	for k, v := range c.byTitle {
		out.byTitle[k] = v
	}
	return out
}
