package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/scentshop/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

//go:embed perfumes.json
var defaultCatalogJSON []byte

// Catalog is the read-only list of purchasable items for the process lifetime.
type Catalog struct {
	items  []Item
	byName map[string]int
}

type catalogFile struct {
	Perfumes []Item `json:"perfumes"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// New validates items and builds an immutable catalog preserving their order.
func New(items []Item) (*Catalog, error) {
	var errs error
	byName := make(map[string]int, len(items))
	stored := make([]Item, 0, len(items))

	for idx, item := range items {
		if err := validate.Struct(item); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %d (%q): %w", idx, item.Name, err))
			continue
		}
		if _, dup := byName[item.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("item %d: duplicate name %q", idx, item.Name))
			continue
		}
		byName[item.Name] = len(stored)
		stored = append(stored, item.clone())
	}

	if errs != nil {
		problems := make([]string, 0)
		for _, err := range multierr.Errors(errs) {
			problems = append(problems, err.Error())
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid catalog").WithDetails(map[string]any{"problems": problems})
	}

	return &Catalog{items: stored, byName: byName}, nil
}

// Default returns the embedded perfume catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogJSON)
}

// Parse decodes a {"perfumes": [...]} document into a catalog.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode catalog")
	}
	return New(file.Perfumes)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog file")
	}
	return Parse(data)
}

// Items returns a copy of the catalog in its original order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	for i, item := range c.items {
		out[i] = item.clone()
	}
	return out
}

// Lookup finds an item by exact name.
func (c *Catalog) Lookup(name string) (Item, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return Item{}, false
	}
	return c.items[idx].clone(), true
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Search runs Filter over the whole catalog.
func (c *Catalog) Search(raw string) []RankedItem {
	return Filter(raw, c.items)
}
