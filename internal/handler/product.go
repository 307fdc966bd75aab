package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/templui/rincon/internal/ctxkeys"
	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/service"
)

var errInvalidPrice = errors.New("price must be a number")

type ProductHandler struct {
	productService *service.ProductService
	maxUploadBytes int64
}

func NewProductHandler(productService *service.ProductService, maxUploadBytes int64) *ProductHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 6 << 20
	}
	return &ProductHandler{
		productService: productService,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		internalError(w, r, "failed to list products", err)
		return
	}
	if products == nil {
		products = []*model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer form.close()

	product, err := h.productService.Create(r.Context(), user.ID, form.input, form.image)
	if err != nil {
		h.writeError(w, r, "failed to create product", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{ID: product.ID, Message: "Product created successfully"})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer form.close()

	_, err := h.productService.Update(r.Context(), user.ID, r.PathValue("id"), form.input, form.image)
	if err != nil {
		h.writeError(w, r, "failed to update product", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Product updated successfully"})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.productService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, "failed to delete product", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

func (h *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		JSONError(w, "Product not found", http.StatusNotFound)
	case errors.Is(err, service.ErrImageRequired):
		JSONError(w, "Image is required", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidProduct), errors.Is(err, service.ErrInvalidImage):
		JSONError(w, err.Error(), http.StatusBadRequest)
	default:
		internalError(w, r, msg, err)
	}
}

type productForm struct {
	input service.ProductInput
	image *service.Upload
	form  *multipart.Form
}

func (f *productForm) close() {
	if f.image != nil {
		closeErr := f.image.File.Close()
		if closeErr != nil {
			slog.Error("failed to close file", "error", closeErr)
		}
	}
	if f.form != nil {
		removeErr := f.form.RemoveAll()
		if removeErr != nil {
			slog.Error("failed to remove multipart files", "error", removeErr)
		}
	}
}

// parseForm reads the multipart product form. Absent fields stay nil so
// updates leave them unchanged; an empty price counts as absent.
func (h *ProductHandler) parseForm(w http.ResponseWriter, r *http.Request) (*productForm, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	err := r.ParseMultipartForm(h.maxUploadBytes)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			JSONError(w, "File too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		JSONError(w, "Invalid form data", http.StatusBadRequest)
		return nil, false
	}

	form := &productForm{form: r.MultipartForm}
	values := r.MultipartForm.Value

	if v, ok := values["name"]; ok && len(v) > 0 {
		form.input.Name = &v[0]
	}
	if v, ok := values["description"]; ok && len(v) > 0 {
		form.input.Description = &v[0]
	}
	if v, ok := values["price"]; ok && len(v) > 0 && strings.TrimSpace(v[0]) != "" {
		price, err := parsePrice(v[0])
		if err != nil {
			form.close()
			JSONError(w, errInvalidPrice.Error(), http.StatusBadRequest)
			return nil, false
		}
		form.input.Price = &price
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		form.image = &service.Upload{File: file, Header: header}
	case errors.Is(err, http.ErrMissingFile):
	default:
		form.close()
		JSONError(w, "Invalid form data", http.StatusBadRequest)
		return nil, false
	}

	return form, true
}

// parsePrice accepts "1500", "1500.50" and "1500,50".
func parsePrice(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errInvalidPrice
	}
	return price, nil
}
