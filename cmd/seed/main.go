// Command seed bulk-imports catalog products from an Excel workbook.
// Expected columns: name, description, price, category, stock, image_url.
// The first row is treated as a header and skipped.
package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/hmlee/threadline-backend/config"
	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/db"
	"github.com/hmlee/threadline-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

func main() {
	filePath := flag.String("file", "products.xlsx", "path to the product workbook")
	sheetName := flag.String("sheet", "", "sheet to import (defaults to the first sheet)")
	flag.Parse()

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	products, err := readProducts(*filePath, *sheetName)
	if err != nil {
		logger.Fatal("Failed to read product workbook", err, map[string]interface{}{
			"file": *filePath,
		})
	}

	if len(products) == 0 {
		logger.Warn("No products found in workbook", map[string]interface{}{
			"file": *filePath,
		})
		return
	}

	imported := 0
	for _, product := range products {
		if err := db.GetDB().Create(&product).Error; err != nil {
			logger.Error("Failed to insert product", err, map[string]interface{}{
				"name": product.Name,
			})
			continue
		}
		imported++
	}

	logger.Info("Product import finished", map[string]interface{}{
		"file":     *filePath,
		"read":     len(products),
		"imported": imported,
	})
}

func readProducts(filePath, sheetName string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		product, ok := parseRow(row)
		if !ok {
			logger.Warn("Skipping malformed row", map[string]interface{}{
				"row": i + 1,
			})
			continue
		}
		products = append(products, product)
	}

	return products, nil
}

func parseRow(row []string) (model.Product, bool) {
	if len(row) < 4 {
		return model.Product{}, false
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return model.Product{}, false
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil || price <= 0 {
		return model.Product{}, false
	}

	product := model.Product{
		Name:        name,
		Description: strings.TrimSpace(row[1]),
		Price:       price,
		Category:    strings.TrimSpace(row[3]),
	}

	if len(row) > 4 {
		if stock, err := strconv.Atoi(strings.TrimSpace(row[4])); err == nil {
			product.Stock = stock
		}
	}
	if len(row) > 5 {
		product.ImageURL = strings.TrimSpace(row[5])
	}

	return product, true
}
