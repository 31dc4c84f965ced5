package app

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qfoodsapp/qfoods/internal/sec"
	"github.com/qfoodsapp/qfoods/internal/storage"
	"github.com/qfoodsapp/qfoods/internal/storage/db"
)

type handler struct {
	store  storage.Store
	logger *slog.Logger
}

func (h handler) register(e *echo.Echo) {
	e.POST("/signup", h.signup)
	e.POST("/login", h.login)

	e.GET("/restaurants", h.listRestaurants)
	e.POST("/restaurants", h.createRestaurant)
	e.POST("/init-restaurants", h.seedRestaurants)

	e.POST("/orders", h.placeOrder)
	e.GET("/orders/:username", h.listOrders)
	e.PUT("/orders/:id", h.updateOrder)
	e.DELETE("/orders/:id", h.deleteOrder)

	e.POST("/checkout", h.checkout)

	e.POST("/location", h.saveLocation)
	e.GET("/location/:username", h.getLocation)
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h handler) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ctx := c.Request().Context()
	switch _, err := sec.Register(ctx, h.store, req.Username, req.Email, req.Password); {
	case errors.Is(err, sec.ErrMissingFields):
		return badRequest(c, "All fields are required")
	case errors.Is(err, storage.ErrAlreadyExists):
		return badRequest(c, "Username already exists")
	case err != nil:
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// login reads credentials from the Authorization header; any JSON body is
// ignored.
func (h handler) login(c echo.Context) error {
	ctx := c.Request().Context()
	account, err := sec.Authenticate(ctx, c.Request(), h.store)
	switch {
	case errors.Is(err, sec.ErrMalformedCredentials):
		return unauthorized(c, "Missing or invalid Authorization header")
	case errors.Is(err, sec.ErrInvalidCredentials):
		return unauthorized(c, "Invalid username or password")
	case err != nil:
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Login successful",
		Username: account.Name,
	})
}

type restaurantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type restaurantResponse struct {
	ID          db.ID  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (h handler) listRestaurants(c echo.Context) error {
	restaurants, err := h.store.ListRestaurants(c.Request().Context())
	if err != nil {
		return h.serverError(c, err)
	}
	resp := make([]restaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		resp = append(resp, restaurantResponse(r))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h handler) createRestaurant(c echo.Context) error {
	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Name is required")
	}

	_, err := h.store.CreateRestaurant(c.Request().Context(), db.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Restaurant created"})
}

func (h handler) seedRestaurants(c echo.Context) error {
	if err := h.store.SeedRestaurants(c.Request().Context()); err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Restaurants added"})
}

type orderItemPayload struct {
	RestaurantID db.ID   `json:"restaurantId"`
	Name         string  `json:"name"`
	Quantity     int64   `json:"quantity"`
	Price        float64 `json:"price"`
}

type orderRequest struct {
	Username string             `json:"username"`
	Items    []orderItemPayload `json:"items"`
	Total    float64            `json:"total"`
}

type orderResponse struct {
	ID        db.ID              `json:"id"`
	Username  string             `json:"username"`
	Items     []orderItemPayload `json:"items"`
	Total     float64            `json:"total"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

type orderPlacedResponse struct {
	Message string `json:"message"`
	OrderID db.ID  `json:"orderId"`
}

func (h handler) placeOrder(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" {
		return badRequest(c, "Username is required")
	}

	items := make([]db.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, db.OrderItem{
			RestaurantID: item.RestaurantID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			Price:        item.Price,
		})
	}
	order, err := h.store.CreateOrder(c.Request().Context(), db.Order{
		Username: req.Username,
		Total:    req.Total,
	}, items)
	if err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusCreated, orderPlacedResponse{
		Message: "Order placed successfully",
		OrderID: order.ID,
	})
}

func (h handler) listOrders(c echo.Context) error {
	orders, err := h.store.ListOrdersByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return h.serverError(c, err)
	}
	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	return c.JSON(http.StatusOK, resp)
}

func toOrderResponse(order storage.OrderWithItems) orderResponse {
	items := make([]orderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemPayload{
			RestaurantID: item.RestaurantID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			Price:        item.Price,
		})
	}
	return orderResponse{
		ID:        order.ID,
		Username:  order.Username,
		Items:     items,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h handler) updateOrder(c echo.Context) error {
	id, err := db.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return badRequest(c, "Status is required")
	}

	switch err := h.store.UpdateOrderStatus(c.Request().Context(), id, req.Status); {
	case errors.Is(err, storage.ErrNotFound):
		return notFound(c, "Order not found")
	case err != nil:
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order updated"})
}

func (h handler) deleteOrder(c echo.Context) error {
	id, err := db.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	switch err := h.store.DeleteOrder(c.Request().Context(), id); {
	case errors.Is(err, storage.ErrNotFound):
		return notFound(c, "Order not found")
	case err != nil:
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Order deleted"})
}

type checkoutRequest struct {
	OrderID db.ID `json:"orderId"`
}

type checkoutResponse struct {
	Message string `json:"message"`
	OrderID db.ID  `json:"orderId"`
}

// checkout flips an order from pending to paid. No payment processing happens
// here.
func (h handler) checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil || req.OrderID == 0 {
		return badRequest(c, "Order id is required")
	}

	ctx := c.Request().Context()
	switch err := h.store.UpdateOrderStatus(ctx, req.OrderID, db.OrderStatusPaid); {
	case errors.Is(err, storage.ErrNotFound):
		return notFound(c, "Order not found")
	case err != nil:
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusOK, checkoutResponse{
		Message: "Payment successful",
		OrderID: req.OrderID,
	})
}

type locationPayload struct {
	Username string  `json:"username"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

func (h handler) saveLocation(c echo.Context) error {
	var req locationPayload
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" {
		return badRequest(c, "Username is required")
	}

	err := h.store.UpsertLocation(c.Request().Context(), db.Location(req))
	if err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Location saved"})
}

func (h handler) getLocation(c echo.Context) error {
	location, err := h.store.GetLocationByUsername(c.Request().Context(), c.Param("username"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return notFound(c, "Location not found")
	case err != nil:
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusOK, locationPayload(location))
}
