package notify

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// OrderEmailItem is one row of the confirmation table.
type OrderEmailItem struct {
	ItemName string
	Quantity int
	Price    decimal.Decimal
}

// OrderEmailData feeds the purchase-confirmation template.
type OrderEmailData struct {
	CustomerName string
	OrderRef     string
	OrderDate    time.Time
	TotalAmount  decimal.Decimal
	Items        []OrderEmailItem
	StoreName    string
	StoreURL     string
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(`<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
    <div style="text-align: center;">
        <h4>{{.StoreName}} Invoice</h4>
    </div>
    <div>
        <p>Hello <strong>{{.CustomerName}}</strong>...!</p>
        <p>Thank You for Your Order:</p>
        <p>For More Shopping Please visit <a href="{{.StoreURL}}">{{.StoreURL}}</a></p>
        <h4><u>Order Details:</u></h4>
        <p>Customer Name: <strong>{{.CustomerName}}</strong></p>
        <p>Order Id: <strong>{{.OrderRef}}</strong></p>
        <p>Order Date: <strong>{{.OrderDate.Format "02 Jan 2006 15:04"}}</strong></p>
        <p>Total Items: <strong>{{len .Items}}</strong></p>
        <p>Total Price: <strong>{{.TotalAmount}}</strong></p>
        <p>Bill Type: <strong>Visa/MasterCard/CreditCard/DebitCard</strong></p>
        <h4><u>Order Summary:</u></h4>
        <table width="50%" border="2" style="margin:30px 10px;border-radius:13px;border-spacing:0;padding:10px;">
            <thead style="background-color:#F1D4AF;">
                <tr>
                    <th>Sl.No</th>
                    <th>Product Name</th>
                    <th>Quantity</th>
                    <th>Price</th>
                </tr>
            </thead>
            <tbody>
                {{range $i, $it := .Items}}<tr>
                    <td>{{inc $i}}</td>
                    <td>{{$it.ItemName}}</td>
                    <td style="align-items:center">{{$it.Quantity}}</td>
                    <td style="align-items:center">{{$it.Price}}</td>
                </tr>{{end}}
            </tbody>
            <tfoot style="background-color:#C5E0DC;">
                <tr>
                    <td colspan="3"></td>
                    <td><strong>${{.TotalAmount}} (AU)</strong></td>
                </tr>
            </tfoot>
        </table>
        <div style="margin: 30px;">
            <h4>Thanks,</h4>
            <h4>{{.StoreName}} Team</h4>
        </div>
    </div>
</body>
</html>`))

// BuildOrderConfirmation renders the purchase-confirmation HTML body.
func BuildOrderConfirmation(data OrderEmailData) (string, error) {
	var body bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
