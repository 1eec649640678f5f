package worth

// Currency one entry of the supported currency catalog
type Currency struct {
	// Code the currency code shown to and selected by users
	Code string

	// Symbol the display symbol, e.g. "₹"
	Symbol string

	// Pair the exchange trading pair quoted in this currency
	Pair string

	// Name the human readable currency name
	Name string

	// NeedsFx true when the pair is quoted in USD and a forex conversion
	// is applied on top. Exactly one catalog entry sets this.
	NeedsFx bool
}

// Currencies the supported currencies in display order.
var Currencies = []Currency{
	{Code: "USDT", Symbol: "$", Pair: "BTCUSDT", Name: "US Dollar"},
	{Code: "INR", Symbol: "₹", Pair: "BTCUSDT", Name: "Indian Rupee", NeedsFx: true},
	{Code: "EUR", Symbol: "€", Pair: "BTCEUR", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Pair: "BTCGBP", Name: "British Pound"},
	{Code: "AUD", Symbol: "A$", Pair: "BTCAUD", Name: "Australian Dollar"},
	{Code: "BRL", Symbol: "R$", Pair: "BTCBRL", Name: "Brazilian Real"},
	{Code: "TRY", Symbol: "₺", Pair: "BTCTRY", Name: "Turkish Lira"},
	{Code: "RUB", Symbol: "₽", Pair: "BTCRUB", Name: "Russian Ruble"},
	{Code: "UAH", Symbol: "₴", Pair: "BTCUAH", Name: "Ukrainian Hryvnia"},
	{Code: "BIDR", Symbol: "Rp", Pair: "BTCBIDR", Name: "Indonesian Rupiah"},
	{Code: "ZAR", Symbol: "R", Pair: "BTCZAR", Name: "South African Rand"},
	{Code: "DAI", Symbol: "◈", Pair: "BTCDAI", Name: "Dai"},
	{Code: "NGN", Symbol: "₦", Pair: "BTCNGN", Name: "Nigerian Naira"},
	{Code: "BUSD", Symbol: "$", Pair: "BTCBUSD", Name: "Binance USD"},
	{Code: "VAI", Symbol: "V", Pair: "BTCVAI", Name: "VAI Stablecoin"},
	{Code: "PLN", Symbol: "zł", Pair: "BTCPLN", Name: "Polish Złoty"},
	{Code: "RON", Symbol: "lei", Pair: "BTCRON", Name: "Romanian Leu"},
	{Code: "ARS", Symbol: "$", Pair: "BTCARS", Name: "Argentine Peso"},
	{Code: "JPY", Symbol: "¥", Pair: "BTCJPY", Name: "Japanese Yen"},
}

var catalog = func() map[string]Currency {
	m := make(map[string]Currency, len(Currencies))
	for _, c := range Currencies {
		m[c.Code] = c
	}
	return m
}()

// Lookup returns the catalog entry for a currency code.
func Lookup(code string) (Currency, bool) {
	c, ok := catalog[code]
	return c, ok
}
