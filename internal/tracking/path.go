package tracking

import "strconv"

// Path is the client route for tracking an order by id.
func Path(orderID int64) string {
	return "/track/" + strconv.FormatInt(orderID, 10)
}
