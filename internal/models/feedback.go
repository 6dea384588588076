package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	Recipe Recipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Author User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

const (
	MinScore = 1
	MaxScore = 5
)

var scoreLabels = [...]string{"", "Very bad", "Bad", "Okay", "Good", "Excellent"}

// ScoreLabel returns the display name of a rating score.
func ScoreLabel(score int) string {
	if score < MinScore || score > MaxScore {
		return ""
	}
	return scoreLabels[score]
}

// Rating is a 1-5 score. A user rates a recipe at most once.
type Rating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_rating_recipe_author" json:"recipe"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_rating_recipe_author" json:"author_id"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Recipe Recipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Author User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// All lists every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Category{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&Comment{},
		&Rating{},
	}
}
