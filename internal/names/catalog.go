//-------------------------------------------------------------------------
//
// pgEdge E-commerce Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package names

import (
	"fmt"
	"sort"
	"sync"
)

// Category holds the word lists product names are composed from.
type Category struct {
	Name     string
	Prefixes []string
	Items    []string
}

// fallback is used for categories that are not registered.
var fallback = Category{
	Prefixes: []string{"Premium"},
	Items:    []string{"Item"},
}

var (
	catalog = make(map[string]Category)
	mu      sync.RWMutex
)

// Register adds or replaces a category. Both word lists must be non-empty.
func Register(c Category) error {
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if len(c.Prefixes) == 0 || len(c.Items) == 0 {
		return fmt.Errorf("category %s needs at least one prefix and one item", c.Name)
	}

	mu.Lock()
	defer mu.Unlock()
	catalog[c.Name] = c
	return nil
}

// Lookup returns the category registered under name. Matching is exact.
// Unknown names yield the fallback word lists and false.
func Lookup(name string) (Category, bool) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := catalog[name]
	if !ok {
		f := fallback
		f.Name = name
		return f, false
	}
	return c, true
}

// Categories returns the registered category names in sorted order.
func Categories() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegister(c Category) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

func init() {
	mustRegister(Category{
		Name:     "Electronics",
		Prefixes: []string{"Smart", "Pro", "Ultra", "Max", "Elite", "Premium", "Digital"},
		Items: []string{"Phone", "Laptop", "Tablet", "Headphones", "Speaker",
			"Monitor", "Keyboard", "Mouse", "Camera", "Smartwatch"},
	})
	mustRegister(Category{
		Name:     "Fashion",
		Prefixes: []string{"Classic", "Trendy", "Vintage", "Modern", "Elegant", "Casual"},
		Items: []string{"Shirt", "Jeans", "Dress", "Jacket", "Shoes",
			"Bag", "Watch", "Sunglasses", "Scarf", "Belt"},
	})
	mustRegister(Category{
		Name:     "Home",
		Prefixes: []string{"Comfort", "Deluxe", "Essential", "Premium", "Standard", "Elite"},
		Items: []string{"Sofa", "Table", "Chair", "Lamp", "Rug",
			"Curtain", "Pillow", "Blanket", "Mirror", "Shelf"},
	})
	mustRegister(Category{
		Name:     "Beauty",
		Prefixes: []string{"Radiance", "Glow", "Pure", "Natural", "Luxury", "Essential"},
		Items: []string{"Cream", "Serum", "Moisturizer", "Cleanser", "Mask",
			"Lipstick", "Foundation", "Perfume", "Shampoo", "Conditioner"},
	})
	mustRegister(Category{
		Name:     "Sports",
		Prefixes: []string{"Active", "Pro", "Performance", "Training", "Elite", "Outdoor"},
		Items: []string{"Shoes", "Ball", "Racket", "Weights", "Mat",
			"Bottle", "Gloves", "Shorts", "Jersey", "Gear"},
	})
	mustRegister(Category{
		Name:     "Toys",
		Prefixes: []string{"Fun", "Classic", "Adventure", "Creative", "Educational", "Play"},
		Items: []string{"Puzzle", "Blocks", "Doll", "Car", "Game",
			"Robot", "Bear", "Ball", "Kit", "Set"},
	})
	mustRegister(Category{
		Name:     "Grocery",
		Prefixes: []string{"Fresh", "Organic", "Premium", "Natural", "Wholesome", "Daily"},
		Items: []string{"Bread", "Milk", "Eggs", "Cheese", "Coffee",
			"Tea", "Rice", "Pasta", "Oil", "Juice"},
	})
}
