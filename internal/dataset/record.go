// Package dataset reads the flat e-commerce CSV and splits it into the
// normalized customer, product, order and order item sets.
package dataset

import "time"

// Column names of the flat dataset, in the order Write emits them.
const (
	ColCustomerID       = "customer_id"
	ColCustomerAge      = "customer_age"
	ColCustomerGender   = "customer_gender"
	ColRegion           = "region"
	ColProductID        = "product_id"
	ColCategory         = "category"
	ColPrice            = "price"
	ColOrderID          = "order_id"
	ColOrderDate        = "order_date"
	ColPaymentMethod    = "payment_method"
	ColShippingCost     = "shipping_cost"
	ColDeliveryTimeDays = "delivery_time_days"
	ColQuantity         = "quantity"
	ColDiscount         = "discount"
	ColTotalAmount      = "total_amount"
	ColProfitMargin     = "profit_margin"
	ColReturned         = "returned"
)

// Columns lists every required column.
var Columns = []string{
	ColOrderID, ColCustomerID, ColProductID, ColCategory, ColPrice,
	ColDiscount, ColQuantity, ColPaymentMethod, ColOrderDate,
	ColDeliveryTimeDays, ColRegion, ColReturned, ColTotalAmount,
	ColShippingCost, ColProfitMargin, ColCustomerAge, ColCustomerGender,
}

// Record is one row of the flat dataset: one product line of one order.
type Record struct {
	CustomerID     string
	CustomerAge    int32
	CustomerGender string
	Region         string

	ProductID string
	Category  string
	Price     float64

	OrderID       string
	OrderDate     time.Time
	PaymentMethod string
	ShippingCost  float64
	DeliveryDays  int32

	Quantity     int32
	Discount     float64
	TotalAmount  float64
	ProfitMargin float64
	Returned     bool
}

// Customer is a row of the customers table.
type Customer struct {
	ID     string
	Age    int32
	Gender string
	Region string
}

// Product is a row of the products table.
type Product struct {
	ID       string
	Category string
	Price    float64
}

// Order is a row of the orders table.
type Order struct {
	ID            string
	CustomerID    string
	Date          time.Time
	PaymentMethod string
	ShippingCost  float64
	DeliveryDays  int32
}

// OrderItem is a row of the order_items table.
type OrderItem struct {
	OrderID      string
	ProductID    string
	Quantity     int32
	Discount     float64
	TotalAmount  float64
	ProfitMargin float64
	Returned     bool
}

// Entities holds the deduplicated entity sets in input order.
type Entities struct {
	Customers  []Customer
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
}

type itemKey struct {
	orderID   string
	productID string
}

// Split deduplicates records into the four entity sets by natural key.
// The first record carrying a key wins; later ones are dropped.
func Split(records []Record) *Entities {
	e := &Entities{}
	customers := make(map[string]struct{})
	products := make(map[string]struct{})
	orders := make(map[string]struct{})
	items := make(map[itemKey]struct{})

	for _, r := range records {
		if _, ok := customers[r.CustomerID]; !ok {
			customers[r.CustomerID] = struct{}{}
			e.Customers = append(e.Customers, Customer{
				ID:     r.CustomerID,
				Age:    r.CustomerAge,
				Gender: r.CustomerGender,
				Region: r.Region,
			})
		}
		if _, ok := products[r.ProductID]; !ok {
			products[r.ProductID] = struct{}{}
			e.Products = append(e.Products, Product{
				ID:       r.ProductID,
				Category: r.Category,
				Price:    r.Price,
			})
		}
		if _, ok := orders[r.OrderID]; !ok {
			orders[r.OrderID] = struct{}{}
			e.Orders = append(e.Orders, Order{
				ID:            r.OrderID,
				CustomerID:    r.CustomerID,
				Date:          r.OrderDate,
				PaymentMethod: r.PaymentMethod,
				ShippingCost:  r.ShippingCost,
				DeliveryDays:  r.DeliveryDays,
			})
		}
		k := itemKey{r.OrderID, r.ProductID}
		if _, ok := items[k]; !ok {
			items[k] = struct{}{}
			e.OrderItems = append(e.OrderItems, OrderItem{
				OrderID:      r.OrderID,
				ProductID:    r.ProductID,
				Quantity:     r.Quantity,
				Discount:     r.Discount,
				TotalAmount:  r.TotalAmount,
				ProfitMargin: r.ProfitMargin,
				Returned:     r.Returned,
			})
		}
	}
	return e
}
