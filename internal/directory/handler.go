package directory

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"SchoolBridge/internal/apperr"
	"SchoolBridge/internal/auth"
	"SchoolBridge/pkg/binding"
	"SchoolBridge/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Dashboard(c echo.Context) error {
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	dashboard, err := h.service.Dashboard(c.Request().Context(), orgID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", dashboard)
}

func (h *Handler) ListStaff(c echo.Context) error {
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	page, limit := queryPaging(c)
	q := StaffQuery{
		Department: c.QueryParam("department"),
		Search:     c.QueryParam("search"),
		Page:       page,
		Limit:      limit,
	}
	result, err := h.service.ListStaff(c.Request().Context(), orgID, q)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", result)
}

func (h *Handler) ListStudents(c echo.Context) error {
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	page, limit := queryPaging(c)
	q := StudentQuery{
		Class:   c.QueryParam("class"),
		Section: c.QueryParam("section"),
		Search:  c.QueryParam("search"),
		Page:    page,
		Limit:   limit,
	}
	result, err := h.service.ListStudents(c.Request().Context(), orgID, q)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", result)
}

func (h *Handler) UpdateOrganization(c echo.Context) error {
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	var req UpdateOrganizationRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	org, err := h.service.UpdateOrganization(c.Request().Context(), orgID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "organization updated successfully", echo.Map{"organization": org})
}

func (h *Handler) StaffProfile(c echo.Context) error {
	orgID, staffID, err := callerIdentity(c)
	if err != nil {
		return response.Error(c, err)
	}
	staff, err := h.service.StaffProfile(c.Request().Context(), orgID, staffID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", echo.Map{"staff": staff})
}

func (h *Handler) UpdateStaffProfile(c echo.Context) error {
	orgID, staffID, err := callerIdentity(c)
	if err != nil {
		return response.Error(c, err)
	}
	var req UpdateStaffProfileRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	staff, err := h.service.UpdateStaffProfile(c.Request().Context(), orgID, staffID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "staff profile updated successfully", echo.Map{"staff": staff})
}

func (h *Handler) StudentProfile(c echo.Context) error {
	orgID, studentID, err := callerIdentity(c)
	if err != nil {
		return response.Error(c, err)
	}
	student, err := h.service.StudentProfile(c.Request().Context(), orgID, studentID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", echo.Map{"student": student})
}

func (h *Handler) UpdateStudentProfile(c echo.Context) error {
	orgID, studentID, err := callerIdentity(c)
	if err != nil {
		return response.Error(c, err)
	}
	var req UpdateStudentProfileRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	student, err := h.service.UpdateStudentProfile(c.Request().Context(), orgID, studentID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "student profile updated successfully", echo.Map{"student": student})
}

func callerIdentity(c echo.Context) (orgID, subjectID primitive.ObjectID, err error) {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	orgID, err = auth.OrganizationIDFrom(c)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	subjectID, err = primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperr.New(apperr.KindUnauthorized, "invalid or missing token")
	}
	return orgID, subjectID, nil
}

func queryPaging(c echo.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	return page, limit
}
