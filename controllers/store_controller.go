// controllers/store_controller.go
package controllers

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"os"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"

	"github.com/Mhmk1399/complex-dashboard-sub002/models"
	"github.com/Mhmk1399/complex-dashboard-sub002/utils"
)

// StoreController serves store-level utilities for the dashboard.
type StoreController struct{}

// NewStoreController creates a new store controller
func NewStoreController() *StoreController {
	return &StoreController{}
}

// storefrontURL builds the public URL of a store's generated site.
func storefrontURL(storeID string) string {
	base := os.Getenv("STOREFRONT_BASE_URL")
	if base == "" {
		base = "https://shop.example.com"
	}
	return fmt.Sprintf("%s/%s", base, storeID)
}

// GetStorefrontQRCode returns a PNG QR code pointing at the authenticated
// store's public site.
func (sc *StoreController) GetStorefrontQRCode(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	qrCode, err := qr.Encode(storefrontURL(storeID), qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	qrCode, err = barcode.Scale(qrCode, 200, 200)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to scale QR code",
		})
	}

	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, qrCode); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to encode QR code as PNG",
		})
	}

	c.Response().Header().Set("Content-Disposition", "inline; filename=storefront-"+storeID+".png")
	return c.Blob(http.StatusOK, "image/png", buffer.Bytes())
}
