package species

import (
	"sort"
	"strings"

	"animalcount/internal/model"

	"github.com/pkg/errors"
)

// ErrUnsupported is returned by Lookup for names missing from the table.
var ErrUnsupported = errors.New("unsupported animal")

// Animal is one selectable livestock category.
type Animal struct {
	Name  string
	Class model.ClassIndex
}

var animals = map[string]Animal{
	"chicken": {Name: "Chicken", Class: 0},
	"cow":     {Name: "Cow", Class: 1},
	"goat":    {Name: "Goat", Class: 2},
	"pig":     {Name: "Pig", Class: 3},
	"sheep":   {Name: "Sheep", Class: 4},
}

// Lookup resolves a user-typed name, ignoring case and surrounding whitespace.
func Lookup(name string) (Animal, error) {
	animal, ok := animals[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Animal{}, errors.Wrapf(ErrUnsupported, "%q", name)
	}
	return animal, nil
}

// Names lists the accepted (lower-case) names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(animals))
	for name := range animals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnsupportedMessage is printed when the user picks an animal with no class.
func UnsupportedMessage(name string) string {
	return "Support for " + name + " is not yet added."
}
