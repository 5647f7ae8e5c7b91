// Package seed はカタログ（カテゴリ・商品）をYAMLから投入する。
package seed

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Catalog struct {
	Categories []CategorySeed `yaml:"categories"`
	Products   []ProductSeed  `yaml:"products"`
}

type CategorySeed struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type ProductSeed struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Price       Price  `yaml:"price"`
	Stock       int64  `yaml:"stock"`
	Image       string `yaml:"image"`
	// カテゴリのslugかname
	Category string `yaml:"category"`
	// 省略時は公開
	Active *bool `yaml:"active"`
}

// 9.99 と "9.99" のどちらも受ける
type Price struct {
	decimal.Decimal
}

func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q", node.Line, node.Value)
	}
	p.Decimal = d
	return nil
}

// 知らないキーはエラー
func Parse(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c, nil
}

func LoadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, err
	}
	defer f.Close()
	return Parse(f)
}
