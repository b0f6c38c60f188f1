package storeValidator

import (
	"madrasa/middleware"
	"madrasa/utils"
	commonValidator "madrasa/validators/common"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	CategoryID  uint   `json:"category_id" validate:"required"`
	Available   *bool  `json:"available"`
	Stock       *int   `json:"stock" validate:"omitempty,gte=0"`
	ImageURL    string `json:"image_url"`
	MeetingLink string `json:"meeting_link"`
	CourseID    *uint  `json:"course_id"`
}

// ParsedPrice returns the validated decimal price.
func (r *ProductRequest) ParsedPrice() decimal.Decimal {
	price, _ := decimal.NewFromString(r.Price)
	return price
}

func CreateProduct() fiber.Handler {
	return productBody("validatedProduct")
}

func UpdateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("id")
		if err != nil || productID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
		}
		c.Locals("productID", uint(productID))
		return productBody("validatedProduct")(c)
	}
}

func productBody(localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProductRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := commonValidator.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}

		if reqData.Price != "" {
			price, err := decimal.NewFromString(reqData.Price)
			if err != nil {
				errors["price"] = "price must be a decimal number!"
			} else if price.IsNegative() {
				errors["price"] = "price cannot be negative!"
			}
		}
		if !utils.IsHTTPSURL(reqData.MeetingLink) {
			errors["meeting_link"] = "meeting_link must be an https:// URL!"
		}
		if !utils.IsHTTPSURL(reqData.ImageURL) {
			errors["image_url"] = "image_url must be an https:// URL!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(localsKey, reqData)
		return c.Next()
	}
}

// ProductDetail validates the product id param.
func ProductDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("id")
		if err != nil || productID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
		}
		c.Locals("productID", uint(productID))
		return c.Next()
	}
}
