package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/repertoire/contacts-api/internal/core/ports"
)

const deletedMessage = "Personne supprimée avec succès"

// PersonHandler handles HTTP requests for a user's contacts.
type PersonHandler struct {
	service ports.PersonService
}

func NewPersonHandler(service ports.PersonService) *PersonHandler {
	return &PersonHandler{service: service}
}

// Create handles POST /personnes.
//
// @Summary      Create a contact
// @Tags         personnes
// @Accept       json
// @Produce      json
// @Param        body  body      personRequest  true  "Contact, including its owner"
// @Success      200   {object}  domain.Person
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /personnes [post]
func (h *PersonHandler) Create(c echo.Context) error {
	var req personRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	person, err := h.service.Create(c.Request().Context(), toPersonInput(req, req.UserID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// List handles GET /personnes/:user_id.
//
// @Summary      List a user's contacts
// @Tags         personnes
// @Produce      json
// @Param        user_id  path      int  true  "Owner id"
// @Success      200      {array}   domain.Person
// @Failure      422      {object}  errorResponse
// @Router       /personnes/{user_id} [get]
func (h *PersonHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	persons, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, persons)
}

// Search handles GET /personnes/search/:user_id/:query.
//
// @Summary      Search a user's contacts
// @Description  Case-insensitive substring match on nom, prenom or telephone.
// @Tags         personnes
// @Produce      json
// @Param        user_id  path      int     true  "Owner id"
// @Param        query    path      string  true  "Text to look for"
// @Success      200      {array}   domain.Person
// @Failure      422      {object}  errorResponse
// @Router       /personnes/search/{user_id}/{query} [get]
func (h *PersonHandler) Search(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	persons, err := h.service.Search(c.Request().Context(), userID, pathText(c, "query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, persons)
}

// Get handles GET /personnes/detail/:user_id/:person_id.
//
// @Summary      Get one contact
// @Tags         personnes
// @Produce      json
// @Param        user_id    path      int  true  "Owner id"
// @Param        person_id  path      int  true  "Contact id"
// @Success      200        {object}  domain.Person
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /personnes/detail/{user_id}/{person_id} [get]
func (h *PersonHandler) Get(c echo.Context) error {
	userID, personID, err := ownedIDs(c)
	if err != nil {
		return err
	}

	person, err := h.service.Get(c.Request().Context(), userID, personID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// Update handles PUT /personnes/:user_id/:person_id. The owner is taken from
// the path; user_id in the body is ignored.
//
// @Summary      Update a contact
// @Tags         personnes
// @Accept       json
// @Produce      json
// @Param        user_id    path      int            true  "Owner id"
// @Param        person_id  path      int            true  "Contact id"
// @Param        body       body      personRequest  true  "New values"
// @Success      200        {object}  domain.Person
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /personnes/{user_id}/{person_id} [put]
func (h *PersonHandler) Update(c echo.Context) error {
	userID, personID, err := ownedIDs(c)
	if err != nil {
		return err
	}

	var req personRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	person, err := h.service.Update(c.Request().Context(), personID, toPersonInput(req, userID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// Delete handles DELETE /personnes/:user_id/:person_id.
//
// @Summary      Delete a contact
// @Tags         personnes
// @Produce      json
// @Param        user_id    path      int  true  "Owner id"
// @Param        person_id  path      int  true  "Contact id"
// @Success      200        {object}  messageResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /personnes/{user_id}/{person_id} [delete]
func (h *PersonHandler) Delete(c echo.Context) error {
	userID, personID, err := ownedIDs(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, personID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: deletedMessage})
}

func ownedIDs(c echo.Context) (userID, personID int64, err error) {
	if userID, err = ctxUserID(c); err != nil {
		return 0, 0, err
	}
	if personID, err = ParseIDParam(c, "person_id"); err != nil {
		return 0, 0, err
	}
	return userID, personID, nil
}
