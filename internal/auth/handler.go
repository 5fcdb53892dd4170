package auth

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"SchoolBridge/internal/apperr"
	"SchoolBridge/pkg/binding"
	"SchoolBridge/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ClaimsFrom pulls the authenticated claims set by the JWT middleware.
func ClaimsFrom(c echo.Context) (*Claims, error) {
	claims, ok := c.Get("user").(*Claims)
	if !ok || claims == nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid or missing token")
	}
	return claims, nil
}

// OrganizationIDFrom returns the caller's tenant id from the claims.
func OrganizationIDFrom(c echo.Context) (primitive.ObjectID, error) {
	claims, err := ClaimsFrom(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	orgID, err := primitive.ObjectIDFromHex(claims.OrganizationID)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.KindUnauthorized, "invalid or missing token")
	}
	return orgID, nil
}

func (h *Handler) RegisterOrganization(c echo.Context) error {
	var req RegisterOrganizationRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	result, err := h.service.RegisterOrganization(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "organization registered successfully", result)
}

func (h *Handler) ListOrganizations(c echo.Context) error {
	organizations, err := h.service.ListOrganizations(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", echo.Map{
		"organizations": organizations,
		"count":         len(organizations),
	})
}

func (h *Handler) LoginOrganization(c echo.Context) error {
	var req LoginOrganizationRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	result, err := h.service.LoginOrganization(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "organization login successful", result)
}

func (h *Handler) LoginStaff(c echo.Context) error {
	var req LoginMemberRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	result, err := h.service.LoginStaff(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "staff login successful", result)
}

func (h *Handler) LoginStudent(c echo.Context) error {
	var req LoginMemberRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	result, err := h.service.LoginStudent(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "student login successful", result)
}

func (h *Handler) RegisterStaff(c echo.Context) error {
	orgID, err := OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	var req RegisterStaffRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	staff, err := h.service.RegisterStaff(c.Request().Context(), orgID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "staff registered successfully", echo.Map{"staff": staff})
}

func (h *Handler) RegisterStudent(c echo.Context) error {
	orgID, err := OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	var req RegisterStudentRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	student, err := h.service.RegisterStudent(c.Request().Context(), orgID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "student registered successfully", echo.Map{"student": student})
}
