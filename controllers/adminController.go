package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bemenstore/bemen-api/initializers"
	"github.com/bemenstore/bemen-api/models"
	"github.com/bemenstore/bemen-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrders lists all orders for the admin with filtering, search, sorting
// and pagination.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("Product").Preload("User")
	countQuery := initializers.DB.Model(&models.Order{})

	if statusFilter := ctx.Query("orderStatus"); statusFilter != "" {
		query = query.Where("order_status = ?", strings.ToUpper(statusFilter))
		countQuery = countQuery.Where("order_status = ?", strings.ToUpper(statusFilter))
	}
	if paymentFilter := ctx.Query("paymentStatus"); paymentFilter != "" {
		query = query.Where("payment_status = ?", strings.ToUpper(paymentFilter))
		countQuery = countQuery.Where("payment_status = ?", strings.ToUpper(paymentFilter))
	}

	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		cond := "orders.id LIKE ? OR user_id IN (SELECT id FROM users WHERE name LIKE ? OR email LIKE ?)"
		query = query.Where(cond, like, like, like)
		countQuery = countQuery.Where(cond, like, like, like)
	}

	query = query.Order("created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

// GetOrder returns any order by id for the admin.
func GetOrder(ctx *gin.Context) {
	orderId, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	var order models.Order
	err := initializers.DB.Preload("Product").Preload("User").First(&order, orderId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrder patches an order's status, tracking id, delivery date or
// cancellation reason. Status changes follow the lifecycle transitions;
// cancelling restocks the product and refunds gateway payments.
func UpdateOrder(ctx *gin.Context) {
	orderId, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	var orderData struct {
		OrderStatus        string  `json:"orderStatus"`
		TrackingID         *string `json:"trackingId"`
		DeliveryDate       string  `json:"deliveryDate"`
		CancellationReason string  `json:"cancellationReason"`
	}
	if err := ctx.ShouldBindJSON(&orderData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	update := services.AdminOrderUpdate{
		TrackingID:         orderData.TrackingID,
		CancellationReason: orderData.CancellationReason,
	}

	if orderData.OrderStatus != "" {
		status := models.OrderStatus(strings.ToUpper(orderData.OrderStatus))
		update.Status = &status
	}
	if orderData.DeliveryDate != "" {
		deliveryDate, err := time.Parse("2006-01-02", orderData.DeliveryDate)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid delivery date, use YYYY-MM-DD")
			return
		}
		update.DeliveryDate = &deliveryDate
	}

	order, err := services.AdminUpdateOrder(initializers.DB, orderId, update)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"order":   order,
	})
}

// GetCancelledOrders lists cancelled, return-pending and returned orders,
// optionally narrowed by the type query parameter.
func GetCancelledOrders(ctx *gin.Context) {
	validStatuses := []models.OrderStatus{
		models.OrderCancelled, models.OrderReturnPending, models.OrderReturned,
	}

	query := initializers.DB.Preload("Product").Preload("User").
		Where("order_status IN ?", validStatuses).
		Order("updated_at desc")

	if orderType := strings.ToUpper(ctx.Query("type")); orderType != "" {
		for _, status := range validStatuses {
			if models.OrderStatus(orderType) == status {
				query = query.Where("order_status = ?", orderType)
				break
			}
		}
	}

	var orders []models.Order
	if result := query.Find(&orders); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// ResolveReturn approves or rejects a pending return.
func ResolveReturn(ctx *gin.Context) {
	orderId, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	var actionData struct {
		Action string `json:"action"`
	}
	_ = ctx.ShouldBindJSON(&actionData)

	order, err := services.ResolveReturn(initializers.DB, orderId, strings.ToLower(actionData.Action))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	message := "Return request rejected."
	if order.OrderStatus == models.OrderReturned {
		message = "Return approved successfully. Stock and payment updated if applicable."
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": message,
		"order":   order,
	})
}

// GetUsers lists non-admin users.
func GetUsers(ctx *gin.Context) {
	var users []models.User
	if err := initializers.DB.Where("is_admin = ?", false).
		Order("created_at desc").Find(&users).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

// GetUser returns one non-admin user by id.
func GetUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var user models.User
	result := initializers.DB.Where("id = ? AND is_admin = ?", userId, false).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

// ToggleUserBan flips the banned flag on a non-admin user.
func ToggleUserBan(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var user models.User
	result := initializers.DB.Where("id = ? AND is_admin = ?", userId, false).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	user.IsBanned = !user.IsBanned
	if err := initializers.DB.Save(&user).Error; err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	statusMsg := "unbanned"
	if user.IsBanned {
		statusMsg = "banned"
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User " + statusMsg + " successfully"})
}

type periodStats struct {
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// Revenue counts exclude cancelled and returned orders.
func aggregateSince(db *gorm.DB, since *time.Time) (periodStats, error) {
	var row struct {
		Revenue decimal.NullDecimal
		Orders  int64
	}

	query := db.Model(&models.Order{}).
		Select("SUM(price * quantity) AS revenue, COUNT(id) AS orders").
		Where("order_status NOT IN ?", []models.OrderStatus{models.OrderCancelled, models.OrderReturned})
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if err := query.Scan(&row).Error; err != nil {
		return periodStats{}, err
	}

	stats := periodStats{Orders: row.Orders, Revenue: decimal.Zero}
	if row.Revenue.Valid {
		stats.Revenue = row.Revenue.Decimal
	}
	return stats, nil
}

// GetDashboard aggregates revenue, order, product and user statistics for
// the admin dashboard.
func GetDashboard(ctx *gin.Context) {
	db := initializers.DB
	now := time.Now()

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := (int(startOfDay.Weekday()) + 6) % 7 // Monday-based week
	startOfWeek := startOfDay.AddDate(0, 0, -weekday)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	totalStats, err := aggregateSince(db, nil)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to aggregate orders", err)
		return
	}
	todayStats, _ := aggregateSince(db, &startOfDay)
	weekStats, _ := aggregateSince(db, &startOfWeek)
	monthStats, _ := aggregateSince(db, &startOfMonth)
	yearStats, _ := aggregateSince(db, &startOfYear)

	var totalProducts, outOfStock, totalUsers int64
	db.Model(&models.Product{}).Where("stock > 0").Count(&totalProducts)
	db.Model(&models.Product{}).Where("stock <= 0").Count(&outOfStock)
	db.Model(&models.User{}).Where("is_admin = ?", false).Count(&totalUsers)

	var statusCounts []struct {
		OrderStatus models.OrderStatus `json:"orderStatus"`
		Count       int64              `json:"count"`
	}
	db.Model(&models.Order{}).
		Select("order_status, COUNT(id) AS count").
		Group("order_status").
		Scan(&statusCounts)
	statusBreakdown := gin.H{}
	for _, item := range statusCounts {
		statusBreakdown[string(item.OrderStatus)] = item.Count
	}

	var categorySales []struct {
		Category string          `json:"category"`
		Total    decimal.Decimal `json:"total"`
	}
	db.Model(&models.Order{}).
		Select("categories.name AS category, SUM(orders.price * orders.quantity) AS total").
		Joins("JOIN products ON products.id = orders.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("orders.order_status NOT IN ?", []models.OrderStatus{models.OrderCancelled, models.OrderReturned}).
		Group("categories.name").
		Order("total desc").
		Scan(&categorySales)

	var monthlyRevenue []struct {
		Month   int             `json:"month"`
		Revenue decimal.Decimal `json:"revenue"`
	}
	db.Model(&models.Order{}).
		Select("MONTH(created_at) AS month, SUM(price * quantity) AS revenue").
		Where("order_status NOT IN ?", []models.OrderStatus{models.OrderCancelled, models.OrderReturned}).
		Where("created_at >= ?", startOfYear).
		Group("MONTH(created_at)").
		Order("month").
		Scan(&monthlyRevenue)

	ctx.JSON(http.StatusOK, gin.H{
		"totalOrders":         totalStats.Orders,
		"totalRevenue":        totalStats.Revenue,
		"todaysOrders":        todayStats.Orders,
		"todaysRevenue":       todayStats.Revenue,
		"weeklyOrders":        weekStats.Orders,
		"weeklyRevenue":       weekStats.Revenue,
		"monthlyOrders":       monthStats.Orders,
		"monthlyRevenue":      monthStats.Revenue,
		"yearlyRevenue":       yearStats.Revenue,
		"totalProducts":       totalProducts,
		"outOfStockProducts":  outOfStock,
		"totalUsers":          totalUsers,
		"orderStatusCounts":   statusBreakdown,
		"categorySales":       categorySales,
		"monthlyRevenueChart": monthlyRevenue,
	})
}
