package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/http/render"
	"volnasup.ru/shop/internal/http/validation"
	"volnasup.ru/shop/internal/modules/products"
	"volnasup.ru/shop/internal/shared/apperr"
	"volnasup.ru/shop/internal/shared/slug"
	"volnasup.ru/shop/internal/storage"
)

const maxImageBytes = 10 << 20

type ProductsHandler struct {
	repo    *products.Repo
	store   storage.Storage
	catalog interface{ Invalidate(context.Context) }
}

func NewProductsHandler(repo *products.Repo, store storage.Storage, catalog interface{ Invalidate(context.Context) }) *ProductsHandler {
	return &ProductsHandler{repo: repo, store: store, catalog: catalog}
}

func (h *ProductsHandler) invalidate(ctx context.Context) {
	if h.catalog != nil {
		h.catalog.Invalidate(ctx)
	}
}

func (h *ProductsHandler) List(c *gin.Context) {
	items, err := h.repo.AdminList(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"products": items})
}

func (h *ProductsHandler) Get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Товар не найден."))
		return
	}
	render.JSON(c, http.StatusOK, p)
}

type productInput struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Slug        string `json:"slug" binding:"max=255"`
	Description string `json:"description" binding:"max=10000"`
	Status      string `json:"status" binding:"required,oneof=draft active archived"`
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}

	p, err := h.repo.CreateProduct(c.Request.Context(), in.Name, in.Slug, in.Description, in.Status)
	if err != nil {
		if products.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", map[string]string{"slug": "Такой адрес уже занят."}))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.invalidate(c.Request.Context())
	render.JSON(c, http.StatusCreated, p)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}

	if err := h.repo.UpdateProduct(c.Request.Context(), c.Param("id"), in.Name, in.Slug, in.Description, in.Status); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.invalidate(c.Request.Context())
	render.NoContent(c)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.invalidate(c.Request.Context())
	render.NoContent(c)
}

type variantInput struct {
	SKU        string            `json:"sku" binding:"required,min=2,max=64"`
	Options    map[string]string `json:"options"`
	PriceCents int64             `json:"priceCents" binding:"required,gt=0"`
	Stock      int               `json:"stock" binding:"gte=0"`
}

func (h *ProductsHandler) AddVariant(c *gin.Context) {
	var in variantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}

	opts, err := json.Marshal(in.Options)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	v, err := h.repo.AddVariant(c.Request.Context(), c.Param("id"), in.SKU, opts, in.PriceCents, in.Stock)
	if err != nil {
		if products.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", map[string]string{"sku": "Такой артикул уже есть."}))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.invalidate(c.Request.Context())
	render.JSON(c, http.StatusCreated, v)
}

func (h *ProductsHandler) UpdateVariant(c *gin.Context) {
	var in variantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}

	opts, err := json.Marshal(in.Options)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.repo.UpdateVariant(c.Request.Context(), c.Param("id"), c.Param("variantId"), in.PriceCents, in.Stock, opts); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.invalidate(c.Request.Context())
	render.NoContent(c)
}

func (h *ProductsHandler) DeleteVariant(c *gin.Context) {
	if err := h.repo.DeleteVariant(c.Request.Context(), c.Param("id"), c.Param("variantId")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.invalidate(c.Request.Context())
	render.NoContent(c)
}

// UploadImage takes a multipart "file" field and an optional
// "position" form value.
func (h *ProductsHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Файл не найден в запросе.", nil))
		return
	}
	if fh.Size > maxImageBytes {
		middleware.Fail(c, apperr.InvalidErr("Файл слишком большой (до 10 МБ).", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.store.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.UnavailableErr("Не удалось сохранить файл.", err))
		return
	}

	position, _ := strconv.Atoi(c.PostForm("position"))
	im, err := h.repo.AddImage(c.Request.Context(), c.Param("id"), res.Key, res.URL, position)
	if err != nil {
		_ = h.store.Delete(c.Request.Context(), res.Key)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	h.invalidate(c.Request.Context())
	render.JSON(c, http.StatusCreated, im)
}

func (h *ProductsHandler) DeleteImage(c *gin.Context) {
	ctx := c.Request.Context()
	im, err := h.repo.GetImage(ctx, c.Param("id"), c.Param("imageId"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Изображение не найдено."))
		return
	}
	if err := h.repo.DeleteImage(ctx, c.Param("id"), c.Param("imageId")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	_ = h.store.Delete(ctx, im.StorageKey)

	h.invalidate(ctx)
	render.NoContent(c)
}
