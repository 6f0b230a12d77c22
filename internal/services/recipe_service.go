package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/fitlog/internal/models"
)

const (
	MaxRecipeNameLength = 200
	MaxRecipeTextLength = 10000
)

var (
	ErrRecipeNameRequired = errors.New("recipe name required")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrRecipeLoadFailed   = errors.New("load recipes failed")
	ErrRecipeSaveFailed   = errors.New("save recipe failed")
	ErrRecipeDeleteFailed = errors.New("delete recipe failed")
)

type RecipeInput struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

type RecipeRepository interface {
	ListByUser(userID uint) ([]models.Recipe, error)
	FindByID(userID uint, recipeID string) (models.Recipe, bool, error)
	Create(recipe *models.Recipe) error
	Update(recipe *models.Recipe) (bool, error)
	Delete(userID uint, recipeID string) (bool, error)
}

type RecipeService struct {
	recipes RecipeRepository
	newID   func() string
}

func NewRecipeService(recipes RecipeRepository) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		newID:   uuid.NewString,
	}
}

func NormalizeRecipeInput(input RecipeInput) (RecipeInput, error) {
	input.Name = truncateRunes(strings.TrimSpace(input.Name), MaxRecipeNameLength)
	if input.Name == "" {
		return input, ErrRecipeNameRequired
	}
	input.Ingredients = truncateRunes(strings.TrimSpace(input.Ingredients), MaxRecipeTextLength)
	input.Instructions = truncateRunes(strings.TrimSpace(input.Instructions), MaxRecipeTextLength)
	return input, nil
}

func (service *RecipeService) List(userID uint) ([]models.Recipe, error) {
	recipes, err := service.recipes.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecipeLoadFailed, err)
	}
	return recipes, nil
}

func (service *RecipeService) Get(userID uint, recipeID string) (models.Recipe, error) {
	recipe, found, err := service.recipes.FindByID(userID, strings.TrimSpace(recipeID))
	if err != nil {
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrRecipeLoadFailed, err)
	}
	if !found {
		return models.Recipe{}, ErrRecipeNotFound
	}
	return recipe, nil
}

func (service *RecipeService) Create(userID uint, input RecipeInput, now time.Time) (models.Recipe, error) {
	normalized, err := NormalizeRecipeInput(input)
	if err != nil {
		return models.Recipe{}, err
	}

	recipe := models.Recipe{
		ID:           service.newID(),
		UserID:       userID,
		Name:         normalized.Name,
		Ingredients:  normalized.Ingredients,
		Instructions: normalized.Instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.recipes.Create(&recipe); err != nil {
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrRecipeSaveFailed, err)
	}
	return recipe, nil
}

// Update keeps the recipe id and creation time.
func (service *RecipeService) Update(userID uint, recipeID string, input RecipeInput, now time.Time) (models.Recipe, error) {
	normalized, err := NormalizeRecipeInput(input)
	if err != nil {
		return models.Recipe{}, err
	}

	recipe := models.Recipe{
		ID:           strings.TrimSpace(recipeID),
		UserID:       userID,
		Name:         normalized.Name,
		Ingredients:  normalized.Ingredients,
		Instructions: normalized.Instructions,
		UpdatedAt:    now,
	}
	matched, err := service.recipes.Update(&recipe)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrRecipeSaveFailed, err)
	}
	if !matched {
		return models.Recipe{}, ErrRecipeNotFound
	}
	return service.Get(userID, recipe.ID)
}

func (service *RecipeService) Delete(userID uint, recipeID string) error {
	deleted, err := service.recipes.Delete(userID, strings.TrimSpace(recipeID))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRecipeDeleteFailed, err)
	}
	if !deleted {
		return ErrRecipeNotFound
	}
	return nil
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
