package http

import (
	"net/http"
	"strings"
	"time"

	"techpro-backoffice/http/handlers"
	"techpro-backoffice/http/middleware"
	"techpro-backoffice/http/response"
)

// Services bundles the handler services the router wires up
type Services struct {
	Counselors    *handlers.CounselorService
	Bookings      *handlers.BookingService
	Students      *handlers.StudentService
	Trainers      *handlers.TrainerService
	Courses       *handlers.CourseService
	Payments      *handlers.PaymentHandler
	Auth          *handlers.AuthService
	Notifications *handlers.NotificationService
	Permissions   *handlers.PermissionService
	PageConfigs   *handlers.PageConfigService
}

// SetupRoutes configures all HTTP routes and middleware
func SetupRoutes(s Services) {
	// Health check
	http.HandleFunc("/api/health", middleware.EnableCORS(healthCheck))

	// Counselor roster
	http.HandleFunc("/api/counselors", middleware.EnableCORS(s.Counselors.Counselors))
	http.HandleFunc("/api/counselors/", middleware.EnableCORS(s.Counselors.CounselorByID))

	// Counseling bookings
	http.HandleFunc("/api/counsellor-bookings", middleware.EnableCORS(s.Bookings.Bookings))
	http.HandleFunc("/api/in-person-bookings", middleware.EnableCORS(s.Bookings.InPersonBookings))
	http.HandleFunc("/api/counsellor-bookings/assign", middleware.EnableCORS(s.Bookings.Assign))
	http.HandleFunc("/api/counsellor-bookings/complete", middleware.EnableCORS(s.Bookings.Complete))
	http.HandleFunc("/api/counsellor-bookings/export", middleware.EnableCORS(s.Bookings.Export))
	http.HandleFunc("/api/counsellor-bookings/", middleware.EnableCORS(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/assign") {
			s.Bookings.AssignByID(w, r)
			return
		}
		http.NotFound(w, r)
	}))

	// Student Management APIs
	http.HandleFunc("/api/students", middleware.EnableCORS(s.Students.Students))
	http.HandleFunc("/api/students/stats/dashboard", middleware.EnableCORS(s.Students.Stats))
	http.HandleFunc("/api/students/import", middleware.EnableCORS(s.Students.Import))
	http.HandleFunc("/api/students/", middleware.EnableCORS(s.Students.StudentByID))

	// Trainer Management APIs
	http.HandleFunc("/api/trainers", middleware.EnableCORS(s.Trainers.Trainers))
	http.HandleFunc("/api/trainers/apply", middleware.EnableCORS(s.Trainers.Apply))
	http.HandleFunc("/api/trainers/applications", middleware.EnableCORS(s.Trainers.Applications))
	http.HandleFunc("/api/trainers/login", middleware.EnableCORS(s.Trainers.Login))
	http.HandleFunc("/api/trainers/", middleware.EnableCORS(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/review") {
			s.Trainers.Review(w, r)
			return
		}
		s.Trainers.TrainerByID(w, r)
	}))

	// Course Management APIs
	http.HandleFunc("/api/courses", middleware.EnableCORS(s.Courses.Courses))
	http.HandleFunc("/api/courses/", middleware.EnableCORS(s.Courses.CourseByID))

	// Payment APIs
	http.HandleFunc("/api/payments", middleware.EnableCORS(s.Payments.Payments))
	http.HandleFunc("/api/initiate-payment", middleware.EnableCORS(s.Payments.Initiate))
	http.HandleFunc("/api/verify-payment", middleware.EnableCORS(s.Payments.Verify))

	// Accounts and logins
	http.HandleFunc("/api/users", middleware.EnableCORS(s.Auth.Users))
	http.HandleFunc("/api/users/signup", middleware.EnableCORS(s.Auth.Signup))
	http.HandleFunc("/api/users/login", middleware.EnableCORS(s.Auth.Login))
	http.HandleFunc("/api/forgot-password", middleware.EnableCORS(s.Auth.ForgotPassword))
	http.HandleFunc("/api/reset-password", middleware.EnableCORS(s.Auth.ResetPassword))
	http.HandleFunc("/api/users/verify/", middleware.EnableCORS(s.Auth.Verify))
	http.HandleFunc("/api/admins/login", middleware.EnableCORS(s.Auth.AdminLogin))
	http.HandleFunc("/api/super-admins/login", middleware.EnableCORS(s.Auth.SuperAdminLogin))

	// Notifications and configuration
	http.HandleFunc("/api/notifications", middleware.EnableCORS(s.Notifications.Notifications))
	http.HandleFunc("/api/permissions", middleware.EnableCORS(s.Permissions.Permissions))
	http.HandleFunc("/api/permissions/check", middleware.EnableCORS(s.Permissions.Check))
	http.HandleFunc("/api/page-configs", middleware.EnableCORS(s.PageConfigs.PageConfigs))
	http.HandleFunc("/api/page-configs/", middleware.EnableCORS(s.PageConfigs.PageConfigByID))
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "", map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
