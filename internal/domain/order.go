package domain

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusAccepted       OrderStatus = "Accepted"
	StatusInTransit      OrderStatus = "InTransit"
	StatusOutForDelivery OrderStatus = "Out Of Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// OrderStatuses is the closed vocabulary offered by the status select, in display order.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusAccepted, StatusInTransit, StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

type OrderAddOn struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	SellingPrice Amount `json:"selling_price"`
	ImageURL     string `json:"image_url"`
}

type OrderItem struct {
	ID           string       `json:"_id"`
	Name         string       `json:"name"`
	VariantName  string       `json:"variant_name"`
	Quantity     int          `json:"quantity"`
	SellingPrice Amount       `json:"selling_price"`
	ImageURL     string       `json:"image_url"`
	AddOns       []OrderAddOn `json:"add_ons"`
}

type Order struct {
	ID                 string      `json:"_id"`
	OrderID            string      `json:"orderId"`
	UserID             string      `json:"userId,omitempty"`
	Status             string      `json:"orderStatus"`
	Items              []OrderItem `json:"cartItems"`
	Billing            *Address    `json:"billingAddress,omitempty"`
	Shipping           *Address    `json:"shippingAddress,omitempty"`
	PaymentMode        string      `json:"paymentMode"`
	CouponApplied      string      `json:"coupanApplied"`
	CouponDiscount     Amount      `json:"coupanDiscount"`
	ShippingCharges    Amount      `json:"shippingCharges"`
	TotalProductPrice  Amount      `json:"totalProductPrice"`
	TotalShipmentPrice Amount      `json:"totalShipmentPrice"`
	TotalPrice         Amount      `json:"totalPrice"`
	DeliveryDate       string      `json:"deliveryDate"`
	DeliverySlot       string      `json:"deliverySlot"`
	OrderNote          string      `json:"orderNote"`
	CreatedAt          string      `json:"createdAt"`
	UpdatedAt          string      `json:"updatedAt"`
}

// Key is the identifier the status endpoint expects.
func (o Order) Key() string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return o.ID
}

// WithStatus returns a copy of orders with the matching order's status replaced.
func WithStatus(orders []Order, key, status string) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	for i := range out {
		if out[i].Key() == key || out[i].ID == key {
			out[i].Status = status
		}
	}
	return out
}
