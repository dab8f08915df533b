package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"vitalimes-backend/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductService interface {
	ListProducts(ctx context.Context, status string) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, sub *models.Submission) (int, error)
	UpdateProduct(ctx context.Context, id int, sub *models.Submission) error
	DeleteProduct(ctx context.Context, id int) error
}

// FormParser stores the files of a multipart form and returns the submission.
type FormParser interface {
	Parse(ctx context.Context, form *multipart.Form) (*models.Submission, error)
}

type ProductController struct {
	service ProductService
	intake  FormParser
	log     *zap.Logger
}

func NewProductController(service ProductService, intake FormParser, log *zap.Logger) *ProductController {
	return &ProductController{service: service, intake: intake, log: log}
}

// @Summary Get all products
// @Description Get every product with the given status, newest first, each with its variants
// @Tags Products
// @Produce json
// @Param status query string false "Product status" Enums(Active, Disabled) default(Active)
// @Success 200 {object} models.ProductListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	products, err := ctrl.service.ListProducts(c.Request.Context(), c.DefaultQuery("status", string(models.StatusActive)))
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, models.ProductListResponse{Success: true, Products: products})
}

// @Summary Get product by ID
// @Description Get product details with its variants
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := ctrl.productID(c)
	if !ok {
		return
	}

	product, err := ctrl.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Product: *product})
}

// @Summary Create product
// @Description Create a product with up to six images, one video and its variants
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Product title"
// @Param description formData string false "Product description"
// @Param category formData string false "Category"
// @Param hsn formData string false "HSN code"
// @Param status formData string false "Status" Enums(Active, Disabled)
// @Param units formData string false "Units"
// @Param variants formData string true "JSON array of variants"
// @Param image1 formData file false "Image slot 1"
// @Param image2 formData file false "Image slot 2"
// @Param image3 formData file false "Image slot 3"
// @Param image4 formData file false "Image slot 4"
// @Param image5 formData file false "Image slot 5"
// @Param image6 formData file false "Image slot 6"
// @Param video formData file false "Product video"
// @Success 201 {object} models.MutationResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	sub, ok := ctrl.submission(c)
	if !ok {
		return
	}

	id, err := ctrl.service.CreateProduct(c.Request.Context(), sub)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.MutationResponse{
		Success: true,
		Message: "Product created successfully",
		ID:      id,
	})
}

// @Summary Update product
// @Description Update a product. Absent text fields keep their value; uploads replace their slot; variants are replaced as a whole
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param title formData string false "Product title"
// @Param description formData string false "Product description"
// @Param category formData string false "Category"
// @Param hsn formData string false "HSN code"
// @Param status formData string false "Status" Enums(Active, Disabled)
// @Param units formData string false "Units"
// @Param variants formData string true "JSON array of variants"
// @Param removedImages formData string false "Slot labels to clear, repeated or as a JSON array"
// @Param image1 formData file false "Image slot 1"
// @Param image2 formData file false "Image slot 2"
// @Param image3 formData file false "Image slot 3"
// @Param image4 formData file false "Image slot 4"
// @Param image5 formData file false "Image slot 5"
// @Param image6 formData file false "Image slot 6"
// @Param video formData file false "Product video"
// @Success 200 {object} models.MutationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := ctrl.productID(c)
	if !ok {
		return
	}

	sub, ok := ctrl.submission(c)
	if !ok {
		return
	}

	if err := ctrl.service.UpdateProduct(c.Request.Context(), id, sub); err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MutationResponse{Success: true, Message: "Product updated successfully"})
}

// @Summary Delete product
// @Description Delete a product, its variants and its media files
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.MutationResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := ctrl.productID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteProduct(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MutationResponse{Success: true, Message: "Product deleted successfully"})
}

func (ctrl *ProductController) productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product id"})
		return 0, false
	}
	return id, true
}

// submission reads the request form and stores its files. Requests without a
// multipart body are read as url-encoded fields with no files.
func (ctrl *ProductController) submission(c *gin.Context) (*models.Submission, bool) {
	form, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		form, err = &multipart.Form{Value: c.Request.PostForm}, nil
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid form data",
			Error:   err.Error(),
		})
		return nil, false
	}
	defer form.RemoveAll()

	sub, err := ctrl.intake.Parse(c.Request.Context(), form)
	if err != nil {
		ctrl.respondError(c, err)
		return nil, false
	}
	return sub, true
}

func (ctrl *ProductController) respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: validationMessage(ve)})
	case errors.Is(err, models.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
	default:
		ctrl.log.Error("product request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal server error"})
	}
}

func validationMessage(ve *models.ValidationError) string {
	if strings.Contains(ve.Message, ve.Field) || ve.Field == "" {
		return ve.Message
	}
	return ve.Error()
}
