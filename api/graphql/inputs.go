package graphql

import "github.com/taskboard/backend/domain"

// Argument decoding. Create inputs map missing keys to zero values;
// patch inputs distinguish "absent" from "present" so unspecified
// fields retain their stored value.

func projectFromInput(input map[string]interface{}) *domain.Project {
	var project domain.Project
	if v, ok := stringArg(input, "name"); ok {
		project.Name = v
	}
	if v, ok := stringArg(input, "description"); ok {
		project.Description = v
	}
	if v, ok := stringArg(input, "department"); ok {
		project.Department = v
	}
	if v, ok := stringArg(input, "backgroundColor"); ok {
		project.BackgroundColor = v
	}
	if v, ok := stringArg(input, "backgroundImage"); ok {
		project.BackgroundImage = v
	}
	if v, ok := stringArg(input, "backgroundColorCard"); ok {
		project.BackgroundColorCard = v
	}
	if v, ok := stringArg(input, "backgroundCard"); ok {
		project.BackgroundCard = v
	}
	if v, ok := boolArg(input, "priority"); ok {
		project.Priority = v
	}
	if v, ok := stringArg(input, "dateAccess"); ok {
		project.DateAccess = v
	}
	return &project
}

func projectPatchFromInput(input map[string]interface{}) domain.ProjectPatch {
	var patch domain.ProjectPatch
	if v, ok := stringArg(input, "name"); ok {
		patch.Name = &v
	}
	if v, ok := stringArg(input, "description"); ok {
		patch.Description = &v
	}
	if v, ok := stringArg(input, "department"); ok {
		patch.Department = &v
	}
	if v, ok := stringArg(input, "backgroundColor"); ok {
		patch.BackgroundColor = &v
	}
	if v, ok := stringArg(input, "backgroundImage"); ok {
		patch.BackgroundImage = &v
	}
	if v, ok := stringArg(input, "backgroundColorCard"); ok {
		patch.BackgroundColorCard = &v
	}
	if v, ok := stringArg(input, "backgroundCard"); ok {
		patch.BackgroundCard = &v
	}
	if v, ok := boolArg(input, "priority"); ok {
		patch.Priority = &v
	}
	if v, ok := stringArg(input, "dateAccess"); ok {
		patch.DateAccess = &v
	}
	return patch
}

func taskFromInput(input map[string]interface{}) *domain.Task {
	var task domain.Task
	if v, ok := stringArg(input, "projectId"); ok {
		task.ProjectID = v
	}
	if v, ok := stringArg(input, "title"); ok {
		task.Title = v
	}
	if v, ok := stringArg(input, "description"); ok {
		task.Description = v
	}
	if v, ok := stringListArg(input, "responsible"); ok {
		task.Responsible = v
	}
	if v, ok := stringArg(input, "endDate"); ok {
		task.EndDate = v
	}
	if v, ok := boolArg(input, "ended"); ok {
		task.Ended = v
	}
	if v, ok := stringArg(input, "notes"); ok {
		task.Notes = v
	}
	if v, ok := stringArg(input, "status"); ok {
		task.Status = v
	}
	if v, ok := stringArg(input, "pathFile"); ok {
		task.PathFile = v
	}
	return &task
}

func taskPatchFromInput(input map[string]interface{}) domain.TaskPatch {
	var patch domain.TaskPatch
	if v, ok := stringArg(input, "projectId"); ok {
		patch.ProjectID = &v
	}
	if v, ok := stringArg(input, "title"); ok {
		patch.Title = &v
	}
	if v, ok := stringArg(input, "description"); ok {
		patch.Description = &v
	}
	if v, ok := stringListArg(input, "responsible"); ok {
		patch.Responsible = &v
	}
	if v, ok := stringArg(input, "endDate"); ok {
		patch.EndDate = &v
	}
	if v, ok := boolArg(input, "ended"); ok {
		patch.Ended = &v
	}
	if v, ok := stringArg(input, "notes"); ok {
		patch.Notes = &v
	}
	if v, ok := stringArg(input, "status"); ok {
		patch.Status = &v
	}
	if v, ok := stringArg(input, "pathFile"); ok {
		patch.PathFile = &v
	}
	return patch
}

func stringArg(input map[string]interface{}, key string) (string, bool) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return "", false
	}
	v, ok := raw.(string)
	return v, ok
}

func boolArg(input map[string]interface{}, key string) (bool, bool) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return false, false
	}
	v, ok := raw.(bool)
	return v, ok
}

func stringListArg(input map[string]interface{}, key string) ([]string, bool) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return nil, false
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
