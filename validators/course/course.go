package courseValidator

import (
	"madrasa/middleware"
	"madrasa/utils"
	commonValidator "madrasa/validators/common"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CourseRequest struct {
	Title         string `json:"title" validate:"required,min=3"`
	DurationDays  int    `json:"duration_days" validate:"omitempty,gte=1"`
	StartDate     string `json:"start_date"` // YYYY-MM-DD, optional
	EndDate       string `json:"end_date"`
	MeetingLink   string `json:"meeting_link"`
	CoverImageURL string `json:"cover_image_url"`
	IsActive      *bool  `json:"is_active"`
}

type ExamRequest struct {
	Title string `json:"title" validate:"required,min=3"`
	Date  string `json:"date" validate:"required"` // RFC3339
}

type ExamResultRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Score     string `json:"score" validate:"required"`
}

type ResourceRequest struct {
	Title        string `json:"title" validate:"required,min=2"`
	Kind         string `json:"kind" validate:"required,oneof=file link note"`
	FileURL      string `json:"file_url"`
	ExternalLink string `json:"external_link"`
	Note         string `json:"note"`
	IsPublic     bool   `json:"is_public"`
}

type CertificateRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	FileURL   string `json:"file_url"`
}

func courseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := commonValidator.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if !utils.IsHTTPSURL(reqData.MeetingLink) {
			errors["meeting_link"] = "meeting_link must be an https:// URL!"
		}
		if !utils.IsHTTPSURL(reqData.CoverImageURL) {
			errors["cover_image_url"] = "cover_image_url must be an https:// URL!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := courseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		c.Locals("courseID", courseID)
		return CreateCourse()(c)
	}
}

func CreateExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := courseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(ExamRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := commonValidator.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedExam", reqData)
		return c.Next()
	}
}

func RecordExamResult() fiber.Handler {
	return func(c *fiber.Ctx) error {
		examID, ok := courseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
		}

		reqData := new(ExamResultRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := commonValidator.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if reqData.Score != "" {
			score, err := decimal.NewFromString(reqData.Score)
			if err != nil {
				errors["score"] = "score must be a decimal number!"
			} else if score.IsNegative() || score.GreaterThan(decimal.NewFromInt(100)) {
				errors["score"] = "score must be between 0 and 100!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("examID", examID)
		c.Locals("validatedExamResult", reqData)
		return c.Next()
	}
}

func CreateResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := courseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(ResourceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := commonValidator.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if !utils.IsHTTPSURL(reqData.FileURL) {
			errors["file_url"] = "file_url must be an https:// URL!"
		}
		if !utils.IsHTTPSURL(reqData.ExternalLink) {
			errors["external_link"] = "external_link must be an https:// URL!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedResource", reqData)
		return c.Next()
	}
}

func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := courseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(CertificateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := commonValidator.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if !utils.IsHTTPSURL(reqData.FileURL) {
			errors["file_url"] = "file_url must be an https:// URL!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}
