package messaging

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

func (h *Handler) Send(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	senderID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return response.Error(c, apperr.New(apperr.KindUnauthorized, "invalid or missing token"))
	}

	var req SendMessageRequest
	if err := binding.BindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	msg, err := h.service.Send(c.Request().Context(), orgID, senderID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "message sent successfully", echo.Map{"message": msg})
}

func (h *Handler) List(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return response.Error(c, apperr.New(apperr.KindUnauthorized, "invalid or missing token"))
	}

	page, limit := queryPaging(c)
	result, err := h.service.ListForUser(c.Request().Context(), orgID, userID, page, limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", result)
}

func (h *Handler) ListForOrganization(c echo.Context) error {
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	page, limit := queryPaging(c)
	result, err := h.service.ListForOrganization(c.Request().Context(), orgID, page, limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", result)
}

func (h *Handler) GetByID(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return response.Error(c, apperr.New(apperr.KindUnauthorized, "invalid or missing token"))
	}
	messageID, err := pathMessageID(c)
	if err != nil {
		return response.Error(c, err)
	}

	msg, err := h.service.GetForUser(c.Request().Context(), orgID, userID, messageID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "", echo.Map{"message": msg})
}

func (h *Handler) Delete(c echo.Context) error {
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	messageID, err := pathMessageID(c)
	if err != nil {
		return response.Error(c, err)
	}
	if err := h.service.Delete(c.Request().Context(), orgID, messageID); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "message deleted successfully", nil)
}

func (h *Handler) MarkRead(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	orgID, err := auth.OrganizationIDFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return response.Error(c, apperr.New(apperr.KindUnauthorized, "invalid or missing token"))
	}
	messageID, err := pathMessageID(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.service.MarkRead(c.Request().Context(), orgID, userID, messageID); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "message marked as read", nil)
}

func pathMessageID(c echo.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.KindValidation, "invalid message id")
	}
	return id, nil
}

func queryPaging(c echo.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	return page, limit
}
