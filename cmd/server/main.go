package main

import (
	"github.com/joho/godotenv"

	availabilityhandler "tablebook/internal/availability/handler"
	availabilityservice "tablebook/internal/availability/service"
	"tablebook/internal/bookings/handler"
	"tablebook/internal/bookings/repository"
	"tablebook/internal/bookings/service"
	"tablebook/internal/bookings/validator"
	"tablebook/pkg/app"
	"tablebook/pkg/config"
	"tablebook/pkg/events"
)

const ServiceName = "tablebook"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting reservation service")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	bookingRepo := repository.NewFileBookingRepository(cfg)
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingService := service.NewBookingService(bookingRepo, bookingValidator, publisher, cfg)
	availabilityService := availabilityservice.NewAvailabilityService(bookingRepo, cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		availabilityhandler.NewAvailabilityHandler(availabilityService, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka publisher", "error", err)
	}
	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaTopic)
	return publisher
}
