package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlog/internal/services"
)

func (handler *Handler) ListRecipes(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	recipes, err := handler.recipeService.List(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "recipes.list", err)
	}
	return c.JSON(recipes)
}

func (handler *Handler) GetRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	recipe, err := handler.recipeService.Get(user.ID, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, "recipes.get", err)
	}
	return c.JSON(recipe)
}

func (handler *Handler) CreateRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := services.RecipeInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	recipe, err := handler.recipeService.Create(user.ID, input, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, "recipes.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

func (handler *Handler) UpdateRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := services.RecipeInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	recipe, err := handler.recipeService.Update(user.ID, c.Params("id"), input, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, "recipes.update", err)
	}
	return c.JSON(recipe)
}

func (handler *Handler) DeleteRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	if err := handler.recipeService.Delete(user.ID, c.Params("id")); err != nil {
		return handler.respondServiceError(c, "recipes.delete", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
