//-------------------------------------------------------------------------
//
// pgEdge E-commerce Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package names synthesizes display names for customers and products and
// backfills them into the database.
package names

import (
	"strings"

	"github.com/pgEdge/pgedge-ecomload/internal/datagen"
)

// Quality tiers appended to product names.
const (
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierSilver   = "Silver"
)

// Synthesizer generates names. It is not safe for concurrent use.
type Synthesizer struct {
	faker *datagen.Faker
}

// New returns a Synthesizer. A non-zero seed makes the output reproducible.
func New(seed uint64) *Synthesizer {
	return &Synthesizer{faker: datagen.NewFakerFromSeed(seed)}
}

// CustomerName returns a full name matching gender. "male" and "female"
// are matched case-insensitively; any other value gets a name drawn
// without regard to gender.
func (s *Synthesizer) CustomerName(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return s.faker.MaleName()
	case "female":
		return s.faker.FemaleName()
	default:
		return s.faker.Name()
	}
}

// ProductName returns "{prefix} {item}", followed by " {tier} Edition"
// when the price earns a quality tier.
func (s *Synthesizer) ProductName(category string, price float64) string {
	c, _ := Lookup(category)
	name := datagen.Choose(s.faker, c.Prefixes) + " " + datagen.Choose(s.faker, c.Items)
	if tier := QualityTier(price); tier != "" {
		name += " " + tier + " Edition"
	}
	return name
}

// QualityTier maps a price to its tier. Thresholds are exclusive: a
// price of exactly 500 is Gold, not Platinum.
func QualityTier(price float64) string {
	switch {
	case price > 500:
		return TierPlatinum
	case price > 200:
		return TierGold
	case price > 100:
		return TierSilver
	default:
		return ""
	}
}
