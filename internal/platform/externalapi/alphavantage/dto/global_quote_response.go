// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

// GlobalQuoteResponse represents the JSON response from the GLOBAL_QUOTE function.
// On throttling or bad input the API answers 200 with one of the message fields
// set and no "Global Quote" object.
type GlobalQuoteResponse struct {
	GlobalQuote  GlobalQuote `json:"Global Quote"`
	Note         string      `json:"Note,omitempty"`
	Information  string      `json:"Information,omitempty"`
	ErrorMessage string      `json:"Error Message,omitempty"`
}

// GlobalQuote holds the quote fields. Every value is a string on the wire.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// Message returns the first non-empty explanatory message from the API.
func (r GlobalQuoteResponse) Message() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	default:
		return r.Information
	}
}
