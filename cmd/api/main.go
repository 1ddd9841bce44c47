package main

import (
	"fmt"
	"net/http"

	"github.com/worklane-hq/orgtime-backend-go/internal/config"
	appHTTP "github.com/worklane-hq/orgtime-backend-go/internal/handler/http"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/jwt"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/locker"
	"github.com/worklane-hq/orgtime-backend-go/internal/repository/postgresql"
	attendanceService "github.com/worklane-hq/orgtime-backend-go/internal/service/attendance"
	leaveService "github.com/worklane-hq/orgtime-backend-go/internal/service/leave"
	shiftService "github.com/worklane-hq/orgtime-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	sessionRepo := postgresql.NewSessionRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	breakTypeRepo := postgresql.NewBreakTypeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRecordRepo := postgresql.NewLeaveRecordRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	locks := locker.New()

	trackerSvc := attendanceService.NewTrackerService(db, sessionRepo, breakRepo, shiftRepo, breakTypeRepo, locks)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveRecordRepo, locks)
	catalogSvc := shiftService.NewCatalogService(db, shiftRepo, breakTypeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(trackerSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	shiftHandler := appHTTP.NewShiftHandler(catalogSvc)

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler, leaveHandler, shiftHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
