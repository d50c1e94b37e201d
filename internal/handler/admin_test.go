package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/leolovestravel/vietnamtravel/internal/remote"
)

func TestAdminRoutesRequireLogin(t *testing.T) {
	env := newTestEnv(t, "admin")

	for _, path := range []string{"/admin", "/admin/tour-management", "/admin/category-management", "/admin/account-management", "/admin/system-test"} {
		rec := env.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login" {
			t.Fatalf("%s: expected redirect to login, got %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestLoginFailureKeepsVisitorAnonymous(t *testing.T) {
	env := newTestEnv(t, "admin")

	rec := env.do(http.MethodPost, "/admin/login", url.Values{"username": {"leo"}, "password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password.") {
		t.Fatalf("expected inline error")
	}
	if rec := env.do(http.MethodGet, "/admin", nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected still anonymous, got %d", rec.Code)
	}
}

func TestLoginDashboardLogout(t *testing.T) {
	env := newTestEnv(t, "admin")
	env.login(t)

	rec := env.do(http.MethodGet, "/admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected dashboard, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "leo@example.com") || !strings.Contains(body, "Welcome back!") {
		t.Fatalf("expected user email and welcome flash on dashboard")
	}
	if !strings.Contains(body, "<strong>2</strong> admins") || !strings.Contains(body, "<strong>2</strong> categories") {
		t.Fatalf("expected aggregated counts")
	}

	if rec := env.do(http.MethodGet, "/admin/login", nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected logged-in visitor to skip login page, got %d", rec.Code)
	}

	rec = env.do(http.MethodPost, "/admin/logout", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login after logout")
	}
	if env.api.count(remote.EndpointLogout) != 1 {
		t.Fatalf("expected remote logout call")
	}
	if rec := env.do(http.MethodGet, "/admin", nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected session cleared after logout")
	}
}

func TestResetPasswordValidatesBeforeCallingAPI(t *testing.T) {
	env := newTestEnv(t, "admin")
	env.login(t)

	rec := env.do(http.MethodPost, "/admin/reset-password", url.Values{
		"old_password":     {"secret"},
		"new_password":     {"abc"},
		"confirm_password": {"abc"},
	})
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "at least 6 characters") {
		t.Fatalf("expected short password error, got %d", rec.Code)
	}

	rec = env.do(http.MethodPost, "/admin/reset-password", url.Values{
		"old_password":     {"secret"},
		"new_password":     {"longenough"},
		"confirm_password": {"different"},
	})
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Passwords do not match") {
		t.Fatalf("expected mismatch error, got %d", rec.Code)
	}
	if env.api.count(remote.EndpointChangePassword) != 0 {
		t.Fatalf("API must not be called for invalid input")
	}

	rec = env.do(http.MethodPost, "/admin/reset-password", url.Values{
		"old_password":     {"secret"},
		"new_password":     {"longenough"},
		"confirm_password": {"longenough"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after change, got %d", rec.Code)
	}
	if env.api.count(remote.EndpointChangePassword) != 1 {
		t.Fatalf("expected one change-password call")
	}
}

func TestAccountMutationsRequireSuperAdmin(t *testing.T) {
	env := newTestEnv(t, "admin")
	env.login(t)

	rec := env.do(http.MethodGet, "/admin/account-management", nil)
	if !strings.Contains(rec.Body.String(), "Only super admins can change accounts.") {
		t.Fatalf("expected read-only account page for admin")
	}

	rec = env.do(http.MethodPost, "/admin/account-management", url.Values{
		"username": {"newbie"}, "email": {"new@example.com"}, "password": {"secret1"}, "role": {"admin"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if env.api.count(remote.EndpointCreateAdmin) != 0 {
		t.Fatalf("plain admin must not reach create-admin")
	}
}

func TestSuperAdminManagesAccounts(t *testing.T) {
	env := newTestEnv(t, "superadmin")
	env.login(t)

	rec := env.do(http.MethodPost, "/admin/account-management", url.Values{
		"username": {"newbie"}, "email": {"new@example.com"}, "password": {"secret1"}, "role": {"admin"},
	})
	if rec.Code != http.StatusSeeOther || env.api.count(remote.EndpointCreateAdmin) != 1 {
		t.Fatalf("expected create-admin call, got %d", rec.Code)
	}

	env.do(http.MethodPost, "/admin/account-management/8/role", url.Values{"role": {"owner"}})
	if env.api.count(remote.EndpointGrantRole) != 0 {
		t.Fatalf("invalid role must not reach the API")
	}
	env.do(http.MethodPost, "/admin/account-management/8/role", url.Values{"role": {"superadmin"}})
	if env.api.count(remote.EndpointGrantRole) != 1 {
		t.Fatalf("expected grant-role call")
	}
}

func TestCategoryManagementUsesCache(t *testing.T) {
	env := newTestEnv(t, "admin")
	env.login(t)

	for i := 0; i < 2; i++ {
		rec := env.do(http.MethodGet, "/admin/category-management", nil)
		if !strings.Contains(rec.Body.String(), "Luxury") {
			t.Fatalf("expected categories listed")
		}
	}
	if n := env.api.count(remote.EndpointGetCategories); n != 1 {
		t.Fatalf("expected one fetch thanks to cache, got %d", n)
	}

	env.do(http.MethodPost, "/admin/category-management", url.Values{"name": {"   "}})
	if env.api.count(remote.EndpointAddCategory) != 0 {
		t.Fatalf("blank name must not reach the API")
	}
	env.do(http.MethodPost, "/admin/category-management", url.Values{"name": {"Beach"}})
	if env.api.count(remote.EndpointAddCategory) != 1 {
		t.Fatalf("expected add-categories call")
	}

	env.do(http.MethodGet, "/admin/category-management", nil)
	if n := env.api.count(remote.EndpointGetCategories); n != 2 {
		t.Fatalf("expected refetch after invalidation, got %d", n)
	}
}

func TestTourManagementCRUD(t *testing.T) {
	env := newTestEnv(t, "admin")
	env.login(t)

	rec := env.do(http.MethodPost, "/admin/tour-management", url.Values{
		"name": {"Phong Nha Caves"}, "category": {"Adventure"}, "price": {"310"}, "duration": {"2 days"},
		"highlights": {"Paradise Cave\n\nDark Cave"}, "featured": {"true"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	var id string
	for _, tour := range env.catalog.All() {
		if tour.Name == "Phong Nha Caves" {
			id = tour.ID
			if tour.Category != "adventure" || len(tour.Highlights) != 2 || !tour.Featured || tour.Rating != nil {
				t.Fatalf("unexpected created tour %+v", tour)
			}
		}
	}
	if id == "" {
		t.Fatalf("tour not created")
	}

	env.do(http.MethodPost, "/admin/tour-management/"+id, url.Values{
		"name": {"Phong Nha Caves"}, "category": {"adventure"}, "price": {"-5"},
	})
	if tour, _ := env.catalog.ByID(id); tour.Price != 310 {
		t.Fatalf("negative price must be rejected")
	}

	env.do(http.MethodPost, "/admin/tour-management/"+id+"/delete", nil)
	if _, ok := env.catalog.ByID(id); ok {
		t.Fatalf("expected tour deleted")
	}
}

func TestTourImageUpload(t *testing.T) {
	env := newTestEnv(t, "admin")
	env.login(t)

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{"name": "Hoi An Lanterns", "category": "cultural", "price": "150", "image": ""} {
		_ = mw.WriteField(k, v)
	}
	fw, _ := mw.CreateFormFile("imageFile", "lantern.png")
	_, _ = fw.Write(pngBuf.Bytes())
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/tour-management/hoian", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range env.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	tour, _ := env.catalog.ByID("hoian")
	if tour.Image != "local://images/hoian" {
		t.Fatalf("expected local image url, got %q", tour.Image)
	}
	if _, ok := env.site.Get(req.Context(), "tour_image_hoian"); !ok {
		t.Fatalf("expected stored image blob")
	}

	page := env.do(http.MethodGet, "/tour/hoian", nil)
	if !strings.Contains(page.Body.String(), "data:image/jpeg;base64,") {
		t.Fatalf("expected resolved data url on detail page")
	}
}

func TestSystemTest(t *testing.T) {
	env := newTestEnv(t, "admin")
	env.login(t)

	rec := env.do(http.MethodGet, "/admin/system-test", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"Remote API", "Session store", "Categories", "Tour catalog"} {
		if !strings.Contains(body, name) {
			t.Fatalf("missing check %s", name)
		}
	}
	if strings.Contains(body, `class="failed"`) {
		t.Fatalf("expected every check to pass")
	}
}
