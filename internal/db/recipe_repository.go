package db

import (
	"github.com/terraincognita07/fitlog/internal/models"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	database *gorm.DB
}

func NewRecipeRepository(database *gorm.DB) *RecipeRepository {
	return &RecipeRepository{database: database}
}

func (repo *RecipeRepository) ListByUser(userID uint) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (repo *RecipeRepository) FindByID(userID uint, recipeID string) (models.Recipe, bool, error) {
	recipe := models.Recipe{}
	result := repo.database.Where("user_id = ? AND id = ?", userID, recipeID).Limit(1).Find(&recipe)
	if result.Error != nil {
		return models.Recipe{}, false, result.Error
	}
	return recipe, result.RowsAffected > 0, nil
}

func (repo *RecipeRepository) Create(recipe *models.Recipe) error {
	return repo.database.Create(recipe).Error
}

// Update rewrites the editable fields and reports whether a row matched.
func (repo *RecipeRepository) Update(recipe *models.Recipe) (bool, error) {
	result := repo.database.Model(&models.Recipe{}).
		Where("user_id = ? AND id = ?", recipe.UserID, recipe.ID).
		Updates(map[string]any{
			"name":         recipe.Name,
			"ingredients":  recipe.Ingredients,
			"instructions": recipe.Instructions,
			"updated_at":   recipe.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *RecipeRepository) Delete(userID uint, recipeID string) (bool, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, recipeID).Delete(&models.Recipe{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
