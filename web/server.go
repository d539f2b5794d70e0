package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Vaflel/school-registry/domain"
	"github.com/Vaflel/school-registry/usecases"
)

type Server struct {
	service *usecases.RegistryService
	mu      sync.Mutex
	server  *http.Server
}

type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewServer(service *usecases.RegistryService) *Server {
	return &Server{
		service: service,
	}
}

// Handler возвращает маршрутизатор со всеми обработчиками сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/students", s.handleStudents)
	mux.HandleFunc("/teachers", s.handleTeachers)
	mux.HandleFunc("/courses", s.handleCourses)
	mux.HandleFunc("/enroll", s.handleEnroll)
	mux.HandleFunc("/assign", s.handleAssign)
	mux.HandleFunc("/save", s.handleSave)
	mux.HandleFunc("/shutdown", s.handleShutdown)
	mux.HandleFunc("/static/", s.handleStatic)
	return mux
}

// shutdownTimeout ограничивает ожидание активных запросов при остановке
const shutdownTimeout = 5 * time.Second

// Start слушает порт и блокирует до остановки сервера.
// Сервер останавливается по /shutdown или при отмене ctx, в обоих случаях возвращается nil.
func (s *Server) Start(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("не удалось занять порт %d: %w", port, err)
	}
	slog.Info("сервер запущен", "url", fmt.Sprintf("http://localhost:%d", port))
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на готовом listener до остановки сервера
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	stopped := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(stopped)
		slog.Info("получен сигнал завершения, остановка сервера")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("ошибка при завершении работы", "error", err)
		}
	})

	err := srv.Serve(ln)
	// Дожидаемся завершения активных запросов, если остановка уже идёт
	if !stop() {
		<-stopped
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		slog.Error("ошибка загрузки шаблона", "error", err)
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	report, err := RenderRegistry(s.service.Database(), s.service.Validate())
	s.mu.Unlock()
	if err != nil {
		slog.Error("ошибка рендеринга реестра", "error", err)
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	data := struct {
		Report template.HTML
	}{
		Report: template.HTML(report),
	}
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("ошибка рендеринга шаблона", "error", err)
	}
}

func (s *Server) handleStudents(w http.ResponseWriter, r *http.Request) {
	values, ok := s.parseForm(w, r, "id")
	if !ok {
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "Поле name обязательно", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.service.Database().PutStudent(domain.NewStudent(values["id"], name))
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTeachers(w http.ResponseWriter, r *http.Request) {
	values, ok := s.parseForm(w, r, "id", "experience")
	if !ok {
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "Поле name обязательно", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.service.Database().PutTeacher(domain.NewTeacher(values["id"], name, values["experience"]))
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	values, ok := s.parseForm(w, r, "id")
	if !ok {
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "Поле name обязательно", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.service.Database().PutCourse(domain.NewCourse(values["id"], name))
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	values, ok := s.parseForm(w, r, "student_id", "course_id")
	if !ok {
		return
	}

	s.mu.Lock()
	err := s.service.Enroll(values["student_id"], values["course_id"])
	s.mu.Unlock()

	s.redirectOrFail(w, r, err)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	values, ok := s.parseForm(w, r, "teacher_id", "course_id")
	if !ok {
		return
	}

	s.mu.Lock()
	err := s.service.AssignTeacher(values["teacher_id"], values["course_id"])
	s.mu.Unlock()

	s.redirectOrFail(w, r, err)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	err := s.service.Save()
	s.mu.Unlock()
	if err != nil {
		slog.Error("ошибка сохранения базы", "error", err)
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleShutdown сохраняет базу и останавливает сервер
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	err := s.service.Save()
	srv := s.server
	s.mu.Unlock()
	if err != nil {
		slog.Error("ошибка сохранения базы", "error", err)
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ActionResponse{
		Success: true,
		Message: "Сервер завершает работу",
	})

	if srv == nil {
		return
	}
	go func() {
		slog.Info("завершение работы сервера")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("ошибка при завершении работы", "error", err)
		}
	}()
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	filePath := "static/" + strings.TrimPrefix(r.URL.Path, "/static/")
	content, err := templates.ReadFile(filePath)
	if err != nil {
		http.Error(w, "Файл не найден", http.StatusNotFound)
		return
	}

	if strings.HasSuffix(r.URL.Path, ".css") {
		w.Header().Set("Content-Type", "text/css")
	}
	w.Write(content)
}

// parseForm проверяет метод и читает целочисленные поля формы
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request, intFields ...string) (map[string]int, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Метод не разрешен", http.StatusMethodNotAllowed)
		return nil, false
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Неверные данные формы", http.StatusBadRequest)
		return nil, false
	}

	values := make(map[string]int, len(intFields))
	for _, field := range intFields {
		// Тот же диапазон, что и в файле базы
		n, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(field)), 10, 32)
		if err != nil {
			http.Error(w, fmt.Sprintf("Поле %s должно быть целым числом", field), http.StatusBadRequest)
			return nil, false
		}
		values[field] = int(n)
	}
	return values, true
}

func (s *Server) redirectOrFail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("ошибка изменения связи", "error", err)
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
