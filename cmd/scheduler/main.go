package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/segyhp/dealer-loans/internal/bootstrap"
	"github.com/segyhp/dealer-loans/internal/config"
	"github.com/segyhp/dealer-loans/internal/reminder"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log := cfg.NewLogger()
	log.Info("Starting payment scheduler...")

	app, err := bootstrap.Open(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}
	defer app.Close()

	// Initialize cron scheduler
	loc := cfg.GetSchedulerLocation()
	c := cron.New(cron.WithSeconds(), cron.WithLocation(loc))

	// Schedule tasks
	job := reminder.NewJob(app.PaymentService(), cfg.Scheduler.ReminderDays, log, loc)
	if _, err := job.Schedule(c, cfg.Scheduler.ReminderCron); err != nil {
		log.WithError(err).Fatal("Error scheduling payment reminder job")
	}

	// Start the scheduler
	c.Start()
	log.WithFields(logrus.Fields{
		"cron":     cfg.Scheduler.ReminderCron,
		"timezone": loc.String(),
	}).Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}
