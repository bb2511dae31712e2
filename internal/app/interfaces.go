package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/smartagro/smartagro/config"
	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/router"
	"github.com/smartagro/smartagro/internal/views"
)

// DBProvider provides database access; DB is nil for the in-memory store
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// ReaderProvider provides the data store
type ReaderProvider interface {
	Reader() catalog.Reader
}

// RouterProvider provides the route table and the page renderer
type RouterProvider interface {
	Routes() *router.Table
	Renderer() *views.Renderer
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// HTTP handlers receive it through the request context.
type AppContext interface {
	DBProvider
	ConfigProvider
	ReaderProvider
	RouterProvider
	SchedulerProvider
}
