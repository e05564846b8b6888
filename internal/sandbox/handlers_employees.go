package sandbox

import (
	"net/http"

	"ems/internal/domain/department"
	"ems/internal/domain/employee"
)

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.listEmployees())
}

func (s *Server) handleSearchEmployees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.searchEmployees(r.URL.Query().Get("q")))
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := s.db.getEmployee(employee.StorageID(id))
	if err != nil {
		failErr(w, err, "Employee not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in employee.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	e, err := s.db.createEmployee(in)
	if err != nil {
		failErr(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in employee.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	e, err := s.db.updateEmployee(employee.StorageID(id), ifMatch(r), in)
	if err != nil {
		failErr(w, err, "Employee not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.deleteEmployee(employee.StorageID(id)); err != nil {
		failErr(w, err, "Employee not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.listDepartments())
}

func (s *Server) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	dep, err := s.db.getDepartment(id)
	if err != nil {
		failErr(w, err, "Department not found")
		return
	}
	writeJSON(w, http.StatusOK, dep)
}

func (s *Server) handleDepartmentEmployees(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := s.db.departmentEmployees(id)
	if err != nil {
		failErr(w, err, "Department not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var in department.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	dep, err := s.db.createDepartment(in)
	if err != nil {
		failErr(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, dep)
}

func (s *Server) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in department.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		failErr(w, err, "")
		return
	}
	dep, err := s.db.updateDepartment(id, ifMatch(r), in)
	if err != nil {
		failErr(w, err, "Department not found")
		return
	}
	writeJSON(w, http.StatusOK, dep)
}

func (s *Server) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.db.deleteDepartment(id); err != nil {
		failErr(w, err, "Department not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
