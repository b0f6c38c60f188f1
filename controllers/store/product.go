package storeController

import (
	"log"
	"time"

	"madrasa/database"
	"madrasa/middleware"
	"madrasa/models"
	storeValidator "madrasa/validators/store"

	"github.com/gofiber/fiber/v2"
)

// GetCategories lists store categories
func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// GetProducts lists available products, optionally filtered by category
func GetProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := database.Database.Db.Model(&models.Product{}).
		Where("available = ? AND is_deleted = ?", true, false).
		Preload("Category")
	if categoryID := c.QueryInt("category", 0); categoryID > 0 {
		db = db.Where("category_id = ?", categoryID)
	}

	var total int64
	db.Count(&total)

	var products []models.Product
	if err := db.Offset((page - 1) * limit).Limit(limit).Order("created_at desc").Find(&products).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch products!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Products fetched successfully!", fiber.Map{
		"products": products,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetProductDetails returns one available product
func GetProductDetails(c *fiber.Ctx) error {
	productID := c.Locals("productID").(uint)

	var product models.Product
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", productID, false).
		Preload("Category").First(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product fetched successfully!", product)
}

// CreateProduct adds a catalog product (admin only)
func CreateProduct(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProduct").(*storeValidator.ProductRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CategoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if reqData.CourseID != nil {
		if err := db.First(&models.Course{}, *reqData.CourseID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Linked course not found!", nil)
		}
	}

	available := true
	if reqData.Available != nil {
		available = *reqData.Available
	}

	product := models.Product{
		Name:        reqData.Name,
		Description: reqData.Description,
		Price:       reqData.ParsedPrice(),
		CategoryID:  reqData.CategoryID,
		Available:   available,
		Stock:       reqData.Stock,
		ImageURL:    reqData.ImageURL,
		MeetingLink: reqData.MeetingLink,
		CourseID:    reqData.CourseID,
	}

	if err := db.Create(&product).Error; err != nil {
		log.Printf("Error creating product: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Product created successfully!", product)
}

// UpdateProduct edits a catalog product (admin only). Price changes never
// touch existing orders; those keep their snapshots.
func UpdateProduct(c *fiber.Ctx) error {
	productID := c.Locals("productID").(uint)
	reqData, ok := c.Locals("validatedProduct").(*storeValidator.ProductRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var product models.Product
	if err := db.Where("id = ? AND is_deleted = ?", productID, false).First(&product).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	product.Name = reqData.Name
	product.Description = reqData.Description
	product.Price = reqData.ParsedPrice()
	product.CategoryID = reqData.CategoryID
	product.Stock = reqData.Stock
	product.ImageURL = reqData.ImageURL
	product.MeetingLink = reqData.MeetingLink
	product.CourseID = reqData.CourseID
	if reqData.Available != nil {
		product.Available = *reqData.Available
	}
	product.UpdatedAt = time.Now()

	if err := db.Save(&product).Error; err != nil {
		log.Printf("Error updating product %d: %v", productID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product updated successfully!", product)
}
