package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-ecomload/internal/datagen"
)

// Reference data for synthetic datasets
var (
	sampleCategories = []string{
		"Electronics", "Fashion", "Home", "Beauty", "Sports", "Toys", "Grocery",
	}
	samplePriceRanges = map[string][2]float64{
		"Electronics": {40, 1500},
		"Fashion":     {10, 400},
		"Home":        {15, 900},
		"Beauty":      {5, 150},
		"Sports":      {10, 600},
		"Toys":        {5, 250},
		"Grocery":     {1, 60},
	}
	sampleGenders       = []string{"Male", "Female", "Other"}
	sampleGenderWeights = []int{48, 48, 4}
	sampleRegions       = []string{"North", "South", "East", "West", "Central"}
	samplePayments      = []string{"Credit Card", "Debit Card", "PayPal", "Cash on Delivery", "Bank Transfer"}
	sampleDiscounts     = []float64{0, 0, 0.05, 0.1, 0.15, 0.2}

	sampleStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	sampleEnd   = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
)

const maxItemsPerOrder = 3

// Generate produces n synthetic rows with consistent customer, product
// and order attributes across rows sharing a key.
func Generate(f *datagen.Faker, n int) []Record {
	if n <= 0 {
		return nil
	}

	customers := make([]Customer, n/3+1)
	for i := range customers {
		customers[i] = Customer{
			ID:     fmt.Sprintf("C%05d", i+1),
			Age:    int32(f.Int(18, 70)),
			Gender: datagen.ChooseWeighted(f, sampleGenders, sampleGenderWeights),
			Region: datagen.Choose(f, sampleRegions),
		}
	}

	products := make([]Product, n/5+1)
	for i := range products {
		category := datagen.Choose(f, sampleCategories)
		bounds := samplePriceRanges[category]
		products[i] = Product{
			ID:       fmt.Sprintf("P%05d", i+1),
			Category: category,
			Price:    datagen.Round(f.Price(bounds[0], bounds[1]), 2),
		}
	}

	records := make([]Record, 0, n)
	for orderNum := 1; len(records) < n; orderNum++ {
		c := datagen.Choose(f, customers)
		d := f.DateRange(sampleStart, sampleEnd).UTC()
		order := Order{
			ID:            fmt.Sprintf("O%06d", orderNum),
			CustomerID:    c.ID,
			Date:          time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			PaymentMethod: datagen.Choose(f, samplePayments),
			ShippingCost:  datagen.Round(f.Float64(0, 25), 2),
			DeliveryDays:  int32(f.Int(1, 10)),
		}

		seen := make(map[string]struct{}, maxItemsPerOrder)
		items := f.Int(1, maxItemsPerOrder)
		for j := 0; j < items && len(records) < n; j++ {
			p := datagen.Choose(f, products)
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}

			qty := int32(f.Int(1, 5))
			discount := datagen.Choose(f, sampleDiscounts)
			total := datagen.Round(p.Price*float64(qty)*(1-discount)+order.ShippingCost, 2)

			records = append(records, Record{
				CustomerID:     c.ID,
				CustomerAge:    c.Age,
				CustomerGender: c.Gender,
				Region:         c.Region,
				ProductID:      p.ID,
				Category:       p.Category,
				Price:          p.Price,
				OrderID:        order.ID,
				OrderDate:      order.Date,
				PaymentMethod:  order.PaymentMethod,
				ShippingCost:   order.ShippingCost,
				DeliveryDays:   order.DeliveryDays,
				Quantity:       qty,
				Discount:       discount,
				TotalAmount:    total,
				ProfitMargin:   datagen.Round(total*f.Float64(0.05, 0.4), 2),
				Returned:       datagen.ChooseWeighted(f, []bool{true, false}, []int{1, 9}),
			})
		}
	}
	return records
}

// Write writes records as CSV with a header row.
func Write(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}

	for _, r := range records {
		if err := cw.Write(formatRecord(r)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatRecord(r Record) []string {
	values := map[string]string{
		ColCustomerID:       r.CustomerID,
		ColCustomerAge:      strconv.Itoa(int(r.CustomerAge)),
		ColCustomerGender:   r.CustomerGender,
		ColRegion:           r.Region,
		ColProductID:        r.ProductID,
		ColCategory:         r.Category,
		ColPrice:            formatFloat(r.Price),
		ColOrderID:          r.OrderID,
		ColOrderDate:        r.OrderDate.Format(time.DateOnly),
		ColPaymentMethod:    r.PaymentMethod,
		ColShippingCost:     formatFloat(r.ShippingCost),
		ColDeliveryTimeDays: strconv.Itoa(int(r.DeliveryDays)),
		ColQuantity:         strconv.Itoa(int(r.Quantity)),
		ColDiscount:         formatFloat(r.Discount),
		ColTotalAmount:      formatFloat(r.TotalAmount),
		ColProfitMargin:     formatFloat(r.ProfitMargin),
		ColReturned:         formatBool(r.Returned),
	}

	row := make([]string, len(Columns))
	for i, col := range Columns {
		row[i] = values[col]
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
