package handler

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"

	"potensidesa/internal/model"
	"potensidesa/internal/service"
	serviceMocks "potensidesa/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testDesa = []model.Desa{{ID: "d1", Name: "Sukamaju", Kecamatan: "Kota"}}

func newInvestmentApp(mInv *serviceMocks.MockInvestmentService, mDash *serviceMocks.MockDashboardService) *fiber.App {
	app := newTestApp()
	sess := withSession(signedIn(model.RoleOperator))
	app.Get("/dashboard/investments", sess, ListInvestments(mInv))
	app.Get("/dashboard/investments/form", sess, InvestmentFormPage(mInv, mDash, nil))
	app.Post("/dashboard/investments/form", sess, SaveInvestment(mInv, mDash, nil))
	app.Post("/dashboard/investments/:id/delete", sess, DeleteInvestment(mInv))
	return app
}

func TestInvestmentFormPage(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		setupMocks  func(mInv *serviceMocks.MockInvestmentService)
		contains    []string
		notContains []string
	}{
		{
			name:        "create form",
			target:      "/dashboard/investments/form",
			setupMocks:  func(mInv *serviceMocks.MockInvestmentService) {},
			contains:    []string{"Tambah Investasi", `name="title" value=""`},
			notContains: []string{`role="alert"`, `name="id"`},
		},
		{
			name:   "edit form is pre-filled",
			target: "/dashboard/investments/form?id=inv-1",
			setupMocks: func(mInv *serviceMocks.MockInvestmentService) {
				mInv.On("Get", mock.Anything, "inv-1").Return(&model.Investment{
					ID: "inv-1", Title: "Wisata Air Terjun", Sector: "Pariwisata", DesaID: "d1", Budget: 250000000,
					ImageURLs: []string{"https://cdn/locations/1-a.png"},
				}, nil).Once()
			},
			contains: []string{
				"Ubah Investasi",
				`name="id" value="inv-1"`,
				`value="Wisata Air Terjun"`,
				`value="250000000"`,
				`<option value="Pariwisata" selected>`,
				`<option value="d1" selected>`,
				`name="removeImage" value="https://cdn/locations/1-a.png"`,
			},
		},
		{
			name:   "missing record becomes create form with notice",
			target: "/dashboard/investments/form?id=gone",
			setupMocks: func(mInv *serviceMocks.MockInvestmentService) {
				mInv.On("Get", mock.Anything, "gone").Return(nil, service.ErrNotFound).Once()
			},
			contains:    []string{`role="alert"`, "Data tidak ditemukan.", "dismiss", "Tambah Investasi"},
			notContains: []string{`name="id"`},
		},
		{
			name:   "provider failure keeps id with notice",
			target: "/dashboard/investments/form?id=inv-1",
			setupMocks: func(mInv *serviceMocks.MockInvestmentService) {
				mInv.On("Get", mock.Anything, "inv-1").
					Return(nil, &service.ProviderError{Op: "investment get", Err: errors.New("timeout")}).Once()
			},
			contains:    []string{`role="alert"`, "Layanan sedang tidak tersedia.", `name="id" value="inv-1"`, `name="title" value=""`},
			notContains: []string{"timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mInv := new(serviceMocks.MockInvestmentService)
			mDash := new(serviceMocks.MockDashboardService)
			tt.setupMocks(mInv)
			mDash.On("Desa", mock.Anything).Return(testDesa, nil).Once()

			resp, err := newInvestmentApp(mInv, mDash).Test(httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			body := readBody(t, resp)
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
			mInv.AssertExpectations(t)
			mDash.AssertExpectations(t)
		})
	}
}

func TestSaveInvestment(t *testing.T) {
	values := url.Values{
		"title":       {"Wisata Air Terjun"},
		"description": {"Kawasan wisata"},
		"sector":      {"Pariwisata"},
		"desaId":      {"d1"},
		"location":    {"Dusun Krajan"},
		"budget":      {"-10"},
		"contactName": {"Pak Kades"},
		"imageUrls":   {"https://cdn/a.png", "https://cdn/b.png"},
		"removeImage": {"https://cdn/b.png"},
	}

	t.Run("success redirects to list", func(t *testing.T) {
		mInv := new(serviceMocks.MockInvestmentService)
		mDash := new(serviceMocks.MockDashboardService)
		mInv.On("Save", mock.Anything, "u-1", mock.MatchedBy(func(f *service.InvestmentForm) bool {
			return f.Title == "Wisata Air Terjun" &&
				len(f.ImageURLs) == 2 &&
				len(f.RemoveImages) == 1
		}), mock.Anything).Return(&model.Investment{ID: "inv-1"}, nil).Once()

		resp, err := newInvestmentApp(mInv, mDash).Test(postForm("/dashboard/investments/form", values))
		require.NoError(t, err)

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/dashboard/investments", resp.Header.Get("Location"))
		mInv.AssertExpectations(t)
	})

	t.Run("validation failure keeps entered state", func(t *testing.T) {
		mInv := new(serviceMocks.MockInvestmentService)
		mDash := new(serviceMocks.MockDashboardService)
		mInv.On("Save", mock.Anything, "u-1", mock.Anything, mock.Anything).
			Return(nil, service.ValidationErrors{{Field: "budget", Message: "Anggaran harus berupa angka bulat tidak negatif"}}).Once()
		mDash.On("Desa", mock.Anything).Return(testDesa, nil).Once()

		resp, err := newInvestmentApp(mInv, mDash).Test(postForm("/dashboard/investments/form", values))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, `value="Wisata Air Terjun"`)
		assert.Contains(t, body, `value="-10"`)
		assert.Contains(t, body, `class="field-error">Anggaran harus berupa angka bulat tidak negatif`)
		mInv.AssertExpectations(t)
	})

	t.Run("image is passed to the service", func(t *testing.T) {
		mInv := new(serviceMocks.MockInvestmentService)
		mDash := new(serviceMocks.MockDashboardService)
		mInv.On("Save", mock.Anything, "u-1", mock.Anything, mock.MatchedBy(func(in *service.UploadInput) bool {
			return in != nil && in.Filename == "foto.png" && in.ContentType == "image/png" && in.Size == 3
		})).Return(&model.Investment{ID: "inv-1"}, nil).Once()

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for k, vs := range values {
			for _, v := range vs {
				require.NoError(t, writer.WriteField(k, v))
			}
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, "image", "foto.png"))
		h.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write([]byte("png"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/dashboard/investments/form", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := newInvestmentApp(mInv, mDash).Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		mInv.AssertExpectations(t)
	})
}

func TestListInvestments(t *testing.T) {
	mInv := new(serviceMocks.MockInvestmentService)
	mDash := new(serviceMocks.MockDashboardService)
	app := newInvestmentApp(mInv, mDash)

	t.Run("success", func(t *testing.T) {
		mInv.On("List", mock.Anything, 20, 0).Return(&service.InvestmentListResult{
			Items: []model.Investment{{ID: "inv-1", Title: "Kebun Kopi", Budget: 1500000}},
			Total: 25, Limit: 20, Offset: 0,
		}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/investments", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Kebun Kopi")
		assert.Contains(t, body, "Rp 1.500.000")
		assert.Contains(t, body, "?offset=20")
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/investments?limit=abc", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service error renders notice", func(t *testing.T) {
		mInv.On("List", mock.Anything, 20, 0).Return(nil, &service.ProviderError{Op: "investment list", Err: errors.New("x")}).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/investments", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), `role="alert"`)
	})

	mInv.AssertExpectations(t)
}

func TestDeleteInvestment(t *testing.T) {
	mInv := new(serviceMocks.MockInvestmentService)
	app := newInvestmentApp(mInv, new(serviceMocks.MockDashboardService))

	mInv.On("Delete", mock.Anything, "inv-1").Return(nil).Once()
	mInv.On("Delete", mock.Anything, "inv-2").Return(&service.ProviderError{Op: "investment delete", Err: errors.New("x")}).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/dashboard/investments/inv-1/delete", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/investments?flash=deleted", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/dashboard/investments/inv-2/delete", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	mInv.AssertExpectations(t)
}
