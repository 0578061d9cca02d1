package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// Pricing rule overrides; defaults match the storefront's fixed rules.
	PromoRate             float64
	TaxRate               float64
	FreeShippingThreshold float64
	FlatShippingFee       float64
}

func Load() Config {
	return Config{
		Port:                  getenv("PORT", "8084"),
		PromoRate:             getenvFloat("PROMO_RATE", 0.10),
		TaxRate:               getenvFloat("TAX_RATE", 0.08),
		FreeShippingThreshold: getenvFloat("FREE_SHIPPING_THRESHOLD", 100),
		FlatShippingFee:       getenvFloat("FLAT_SHIPPING_FEE", 9.99),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
