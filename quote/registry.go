package quote

// CurrencyInfo is the display metadata for a base currency
type CurrencyInfo struct {
	Category Category
	Kind     CurrencyKind
	Color    string
	Icon     string
}

// ExchangeInfo is the display metadata for a rate source
type ExchangeInfo struct {
	Name        string
	TradeType   TradeType
	URL         string
	Description string
	Schedule    string
}

// currencyRegistry maps base currency codes to display metadata
var currencyRegistry = map[string]CurrencyInfo{
	"USD": {
		Category: CategoryDolar,
		Kind:     CurrencyKindFiat,
		Color:    "bg-blue-600",
		Icon:     "DollarSign",
	},
	"EUR": {
		Category: CategoryEuro,
		Kind:     CurrencyKindFiat,
		Color:    "bg-indigo-600",
		Icon:     "Euro",
	},
	"USDT": {
		Category: CategoryCripto,
		Kind:     CurrencyKindCrypto,
		Color:    "bg-yellow-600",
		Icon:     "Wallet",
	},
	"BTC": {
		Category: CategoryCripto,
		Kind:     CurrencyKindCrypto,
		Color:    "bg-orange-600",
		Icon:     "Wallet",
	},
	"ETH": {
		Category: CategoryCripto,
		Kind:     CurrencyKindCrypto,
		Color:    "bg-purple-600",
		Icon:     "Wallet",
	},
}

// exchangeRegistry maps exchange codes to display metadata
var exchangeRegistry = map[string]ExchangeInfo{
	"BCV": {
		Name:        "BCV",
		TradeType:   TradeTypeOfficial,
		URL:         "https://www.bcv.org.ve",
		Description: "Banco Central de Venezuela",
		Schedule:    "Actualizado de lunes a viernes de 9:00h a 16:00h.",
	},
	"BINANCE_P2P": {
		Name:        "Binance",
		TradeType:   TradeTypeP2P,
		URL:         "https://p2p.binance.com",
		Description: "Binance P2P Venezuela",
		Schedule:    "Opera las 24 horas, los 7 días de la semana.",
	},
	"ITALCAMBIOS": {
		Name:        "Italcambios",
		TradeType:   TradeTypeP2P,
		URL:         "https://italcambios.com",
		Description: "Italcambios",
		Schedule:    "Horario comercial de lunes a viernes.",
	},
}

// CurrencyConfig looks up the display metadata for a base currency.
// Unknown currencies resolve to a generic crypto entry, never an error
func CurrencyConfig(baseCurrency string) CurrencyInfo {
	if info, ok := currencyRegistry[baseCurrency]; ok {
		return info
	}

	return CurrencyInfo{
		Category: CategoryCripto,
		Kind:     CurrencyKindCrypto,
		Color:    "bg-gray-600",
		Icon:     "Wallet",
	}
}

// ExchangeConfig looks up the display metadata for an exchange code.
// Unknown exchanges resolve to a generic p2p entry, never an error
func ExchangeConfig(exchangeCode string) ExchangeInfo {
	if info, ok := exchangeRegistry[exchangeCode]; ok {
		return info
	}

	return ExchangeInfo{
		Name:        exchangeCode,
		TradeType:   TradeTypeP2P,
		URL:         "#",
		Description: exchangeCode,
		Schedule:    "Actualización continua.",
	}
}

// KnownExchangeCodes returns the exchange codes present in the registry
func KnownExchangeCodes() []string {
	codes := make([]string, 0, len(exchangeRegistry))

	for code := range exchangeRegistry {
		codes = append(codes, code)
	}

	return codes
}
