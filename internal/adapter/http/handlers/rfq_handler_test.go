package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"milling_aggregator/internal/adapter/http/handlers/mocks"
	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestRFQHandler_CreateRFQ(t *testing.T) {
	t.Run("multipart with cad file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRFQUseCase(ctrl)
		h := NewRFQHandler(uc, 1<<20)
		r := newRouter(buyer)
		r.POST("/api/rfqs", h.CreateRFQ)

		uc.EXPECT().Submit(gomock.Any(), buyer, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Identity, spec entities.RFQSpec, cad *usecase.CADAttachment) (entities.RFQ, error) {
				if spec.Material != entities.MaterialAluminum6061 || spec.Quantity != 10 || !spec.PartMarking {
					t.Fatalf("unexpected spec: %+v", spec)
				}
				if cad == nil || cad.Filename != "bracket.step" || string(cad.Data) != "solid" {
					t.Fatalf("unexpected attachment: %+v", cad)
				}
				return entities.RFQ{ID: "rfq-1", UserID: buyer.UserID, Material: spec.Material, Quantity: spec.Quantity, CADFilename: cad.Filename, CADFileID: "cad/x"}, nil
			},
		)

		body, ct := multipartBody(t, map[string]string{
			"material":     "Aluminum 6061",
			"quantity":     "10",
			"part_marking": "true",
		}, "bracket.step", []byte("solid"))
		w := serve(r, http.MethodPost, "/api/rfqs", body, ct)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var res map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if res["id"] != "rfq-1" || res["cad_filename"] != "bracket.step" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("json without attachment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRFQUseCase(ctrl)
		h := NewRFQHandler(uc, 0)
		r := newRouter(buyer)
		r.POST("/api/rfqs", h.CreateRFQ)

		var nilCAD *usecase.CADAttachment
		uc.EXPECT().Submit(gomock.Any(), buyer, entities.RFQSpec{Material: "PEEK", Quantity: 2}, nilCAD).Return(entities.RFQ{ID: "rfq-2"}, nil)

		w := serve(r, http.MethodPost, "/api/rfqs", bytes.NewBufferString(`{"material":"PEEK","quantity":2}`), "application/json")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("validation error names the field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRFQUseCase(ctrl)
		h := NewRFQHandler(uc, 0)
		r := newRouter(buyer)
		r.POST("/api/rfqs", h.CreateRFQ)

		uc.EXPECT().Submit(gomock.Any(), buyer, gomock.Any(), gomock.Any()).Return(entities.RFQ{}, entities.NewValidationError("quantity", "must be at least 1"))

		body, ct := multipartBody(t, map[string]string{"material": "Aluminum 6061", "quantity": "0"}, "", nil)
		w := serve(r, http.MethodPost, "/api/rfqs", body, ct)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if e := decodeError(t, w); e.Field != "quantity" || e.Code != "VALIDATION_ERROR" {
			t.Fatalf("unexpected error body: %+v", e)
		}
	})

	t.Run("malformed quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewRFQHandler(mocks.NewMockIRFQUseCase(ctrl), 0)
		r := newRouter(buyer)
		r.POST("/api/rfqs", h.CreateRFQ)

		body, ct := multipartBody(t, map[string]string{"material": "Aluminum 6061", "quantity": "ten"}, "", nil)
		w := serve(r, http.MethodPost, "/api/rfqs", body, ct)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewRFQHandler(mocks.NewMockIRFQUseCase(ctrl), 0)
		r := newRouter(entities.Identity{})
		r.POST("/api/rfqs", h.CreateRFQ)

		w := serve(r, http.MethodPost, "/api/rfqs", bytes.NewBufferString(`{}`), "application/json")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestRFQHandler_ListAndGet(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRFQUseCase(ctrl)
		h := NewRFQHandler(uc, 0)
		r := newRouter(buyer)
		r.GET("/api/rfqs", h.ListRFQs)

		uc.EXPECT().ListFor(gomock.Any(), buyer).Return([]entities.RFQ{{ID: "b"}, {ID: "a"}}, nil)

		w := serve(r, http.MethodGet, "/api/rfqs", nil, "")
		var res []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if w.Code != http.StatusOK || len(res) != 2 || res[0]["id"] != "b" {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("empty list renders as array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRFQUseCase(ctrl)
		h := NewRFQHandler(uc, 0)
		r := newRouter(buyer)
		r.GET("/api/rfqs", h.ListRFQs)

		uc.EXPECT().ListFor(gomock.Any(), buyer).Return(nil, nil)

		w := serve(r, http.MethodGet, "/api/rfqs", nil, "")
		if w.Body.String() != "[]" {
			t.Fatalf("expected [], got %s", w.Body.String())
		}
	})

	t.Run("get invisible", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRFQUseCase(ctrl)
		h := NewRFQHandler(uc, 0)
		r := newRouter(buyer)
		r.GET("/api/rfqs/:id", h.GetRFQ)

		uc.EXPECT().GetByID(gomock.Any(), "rfq-9", buyer).Return(entities.RFQ{}, entities.NewNotFoundError("rfq", "rfq-9"))

		w := serve(r, http.MethodGet, "/api/rfqs/rfq-9", nil, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
