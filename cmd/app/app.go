package main

import (
	"os"

	"github.com/Maria-Yarosh/shop.project.SF/internal/app"
	config "github.com/Maria-Yarosh/shop.project.SF/internal/cfg"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
)

// @title						Shop catalog API
// @version					1.0
// @description				Каталог товаров: товары, изображения, похожие товары и комментарии.
// @BasePath					/api
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
