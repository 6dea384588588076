package models

import (
	"time"
)

// Unit is the measurement unit of an ingredient line.
type Unit string

const (
	UnitGrams       Unit = "g"
	UnitKilograms   Unit = "kg"
	UnitMilliliters Unit = "ml"
	UnitLiters      Unit = "l"
	UnitPieces      Unit = "pcs"
	UnitCups        Unit = "cups"
	UnitTablespoons Unit = "tbsp"
	UnitTeaspoons   Unit = "tsp"
)

var unitLabels = map[Unit]string{
	UnitGrams:       "Grams",
	UnitKilograms:   "Kilograms",
	UnitMilliliters: "Milliliters",
	UnitLiters:      "Liters",
	UnitPieces:      "Pieces",
	UnitCups:        "Cups",
	UnitTablespoons: "Tablespoons",
	UnitTeaspoons:   "Teaspoons",
}

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	_, ok := unitLabels[u]
	return ok
}

// Label is the human readable name of the unit.
func (u Unit) Label() string {
	return unitLabels[u]
}

// TimeUnit qualifies prep and cook times. The empty value is allowed.
type TimeUnit string

const (
	TimeUnitMinutes TimeUnit = "minutes"
	TimeUnitHours   TimeUnit = "hours"
)

func (t TimeUnit) Valid() bool {
	return t == "" || t == TimeUnitMinutes || t == TimeUnitHours
}

// MinRecipeIngredients is the smallest number of ingredient lines a recipe may have.
const MinRecipeIngredients = 2

type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

type Recipe struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ImageKey      string    `gorm:"size:255" json:"-"`
	CategoryID    *uint     `gorm:"index" json:"category_id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	AuthorID      uint      `gorm:"not null;index" json:"author_id"`
	PrepTime      uint      `gorm:"not null" json:"prep_time"`
	PrepTimeUnit  TimeUnit  `gorm:"size:10" json:"prep_time_unit"`
	CookTime      uint      `gorm:"not null" json:"cook_time"`
	CookTimeUnits TimeUnit  `gorm:"size:10" json:"cook_time_units"`
	Servings      uint      `gorm:"not null" json:"servings"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Category    *Category          `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Ingredient struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"size:100;not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// RecipeIngredient is one line of a recipe: an ingredient with its amount.
type RecipeIngredient struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	RecipeID     uint   `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint   `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Quantity     uint   `gorm:"not null" json:"quantity"`
	Unit         Unit   `gorm:"size:10;not null" json:"unit"`
	Note         string `gorm:"size:100" json:"note"`

	Ingredient Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
