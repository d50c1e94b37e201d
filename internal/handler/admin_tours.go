package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/catalog"
	"github.com/leolovestravel/vietnamtravel/internal/images"
	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

const tourManagementPath = "/admin/tour-management"

func (h *AdminHandler) Tours(c echo.Context) error {
	edit, _ := h.catalog.ByID(c.QueryParam("edit"))
	return render(c, http.StatusOK, "admin/tours.html", web.View{
		Title: "Tour management",
		Data: map[string]interface{}{
			"Tours":      h.catalog.All(),
			"Edit":       edit,
			"Categories": h.catalog.Categories(),
		},
	})
}

// tourFromForm reads the tour editor. Rating and review count stay nil when
// left blank.
func tourFromForm(c echo.Context) (models.Tour, error) {
	t := models.Tour{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Location:    strings.TrimSpace(c.FormValue("location")),
		Duration:    strings.TrimSpace(c.FormValue("duration")),
		Category:    strings.ToLower(strings.TrimSpace(c.FormValue("category"))),
		Featured:    c.FormValue("featured") == "true",
		Image:       strings.TrimSpace(c.FormValue("image")),
		Highlights:  []string{},
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
	if err != nil {
		return t, models.ErrNegativePrice
	}
	t.Price = price

	if v := strings.TrimSpace(c.FormValue("rating")); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return t, models.ErrRatingOutOfRange
		}
		t.Rating = &rating
	}
	if v := strings.TrimSpace(c.FormValue("reviewCount")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			t.ReviewCount = &n
		}
	}

	for _, line := range strings.Split(c.FormValue("highlights"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			t.Highlights = append(t.Highlights, line)
		}
	}
	return t, t.Validate()
}

// saveUpload stores an uploaded image for the tour, if one was sent.
func (h *AdminHandler) saveUpload(c echo.Context, id string) (string, bool, error) {
	fh, err := c.FormFile("imageFile")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) || (err == nil && fh.Size == 0) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	f, err := fh.Open()
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	url, err := h.images.Save(c.Request().Context(), id, f)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func (h *AdminHandler) CreateTour(c echo.Context) error {
	t, err := tourFromForm(c)
	if err != nil {
		return redirectWithFlash(c, tourManagementPath, validationMessage(err))
	}

	created, err := h.catalog.Create(t)
	if err != nil {
		return redirectWithFlash(c, tourManagementPath, validationMessage(err))
	}

	if url, ok, err := h.saveUpload(c, created.ID); err != nil {
		log.Printf("Save image for tour %s: %v", created.ID, err)
		return redirectWithFlash(c, tourManagementPath, "Tour created, but the image could not be processed.")
	} else if ok {
		created.Image = url
		if _, err := h.catalog.Update(created.ID, created); err != nil {
			return redirectWithFlash(c, tourManagementPath, validationMessage(err))
		}
	}

	log.Printf("Tour %s created", created.ID)
	return redirectWithFlash(c, tourManagementPath, "Tour \""+created.Name+"\" created.")
}

func (h *AdminHandler) UpdateTour(c echo.Context) error {
	id := c.Param("id")
	existing, ok := h.catalog.ByID(id)
	if !ok {
		return redirectWithFlash(c, tourManagementPath, "Tour not found.")
	}

	t, err := tourFromForm(c)
	if err != nil {
		return redirectWithFlash(c, tourManagementPath+"?edit="+id, validationMessage(err))
	}

	url, uploaded, err := h.saveUpload(c, id)
	if err != nil {
		log.Printf("Save image for tour %s: %v", id, err)
		return redirectWithFlash(c, tourManagementPath+"?edit="+id, "The image could not be processed.")
	}
	if uploaded {
		t.Image = url
	} else if images.IsLocal(existing.Image) && t.Image != existing.Image {
		if err := h.images.Delete(c.Request().Context(), id); err != nil {
			log.Printf("Delete image for tour %s: %v", id, err)
		}
	}

	if _, err := h.catalog.Update(id, t); err != nil {
		return redirectWithFlash(c, tourManagementPath+"?edit="+id, validationMessage(err))
	}
	return redirectWithFlash(c, tourManagementPath, "Tour \""+t.Name+"\" updated.")
}

func (h *AdminHandler) DeleteTour(c echo.Context) error {
	id := c.Param("id")
	existing, _ := h.catalog.ByID(id)

	if err := h.catalog.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return redirectWithFlash(c, tourManagementPath, "Tour not found.")
		}
		return err
	}
	if images.IsLocal(existing.Image) {
		if err := h.images.Delete(c.Request().Context(), id); err != nil {
			log.Printf("Delete image for tour %s: %v", id, err)
		}
	}
	return redirectWithFlash(c, tourManagementPath, "Tour deleted.")
}
