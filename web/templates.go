package web

import (
	"html/template"

	"github.com/amonks/tasklist/todo"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"statusLabel": func(status todo.Status) string { return status.Label() },
		"statusValue": func(status todo.Status) string { return string(status) },
		"statusClass": statusClass,
	}
	tmpl := template.Must(template.New("layout").Funcs(funcs).Parse(layoutTemplate))
	template.Must(tmpl.New("index").Parse(indexTemplate))
	template.Must(tmpl.New("edit").Parse(editTemplate))
	return tmpl
}

func statusClass(status todo.Status) string {
	switch status {
	case todo.StatusCompleted:
		return "badge completed"
	case todo.StatusInProgress:
		return "badge in-progress"
	default:
		return "badge not-started"
	}
}

const layoutTemplate = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.}}</title>
  <style>
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: #fcfaf6;
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
    }
    header h1 {
      margin: 0;
      font-size: 20px;
    }
    main {
      padding: 18px 24px 28px;
      max-width: 860px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
    }
    th, td {
      text-align: left;
      padding: 8px 10px;
      border-bottom: 1px solid #e6dccd;
    }
    .badge {
      padding: 2px 8px;
      border-radius: 999px;
      font-size: 13px;
    }
    .badge.completed { background: #dcefd8; }
    .badge.in-progress { background: #f7e6bf; }
    .badge.not-started { background: #ece6dc; }
    .flash {
      padding: 10px 12px;
      margin-bottom: 14px;
      border: 1px solid #e2b4a6;
      border-radius: 8px;
      background: #fbece7;
    }
    .field-error {
      color: #a2402a;
      font-size: 13px;
      display: block;
    }
    form.inline { display: inline; }
    fieldset {
      border: 1px solid #d7cdbd;
      border-radius: 10px;
      margin-top: 18px;
    }
  </style>
</head>
<body>
<header><h1>Tasks</h1></header>
<main>
{{end}}

{{define "foot"}}
<script>
  document.querySelectorAll("input[data-validate-name]").forEach(function (input) {
    var output = document.getElementById(input.dataset.validateName);
    input.addEventListener("change", function () {
      var params = new URLSearchParams({ title: input.value, id: input.dataset.todoId || "0" });
      fetch("/web/todos/validate-name?" + params.toString())
        .then(function (resp) { return resp.json(); })
        .then(function (result) { output.textContent = result === true ? "" : result; });
    });
  });
</script>
</main>
</body>
</html>
{{end}}`

const indexTemplate = `{{template "head" "Tasks"}}
{{if .Flash}}<div class="flash">{{.Flash}}</div>{{end}}
{{if .Todos}}
<table>
  <thead>
    <tr><th>ID</th><th>Task</th><th>Priority</th><th>Status</th><th></th></tr>
  </thead>
  <tbody>
  {{range .Todos}}
    <tr>
      <td>{{.ID}}</td>
      <td>{{.Title}}</td>
      <td>{{.Priority}}</td>
      <td><span class="{{statusClass .Status}}">{{statusLabel .Status}}</span></td>
      <td>
        <a href="/web/todos/edit?id={{.ID}}">Edit</a>
        {{if .IsCompleted}}
        <form class="inline" method="post" action="/web/todos/delete">
          <input type="hidden" name="id" value="{{.ID}}">
          <button type="submit">Delete</button>
        </form>
        {{end}}
      </td>
    </tr>
  {{end}}
  </tbody>
</table>
{{else}}
<p>No tasks yet.</p>
{{end}}

<form method="post" action="/web/todos/create">
  <fieldset>
    <legend>Add task</legend>
    {{with index .Errors "form"}}<span class="field-error">{{.}}</span>{{end}}
    <label>Task Name
      <input name="title" value="{{.Form.Title}}" data-validate-name="title-error" data-todo-id="0">
    </label>
    <span class="field-error" id="title-error">{{index .Errors "title"}}</span>
    <label>Priority
      <input name="priority" type="number" min="1" max="100" value="{{.Form.Priority}}">
    </label>
    <span class="field-error">{{index .Errors "priority"}}</span>
    <button type="submit">Add</button>
  </fieldset>
</form>
{{template "foot"}}`

const editTemplate = `{{template "head" "Edit task"}}
<form method="post" action="/web/todos/edit">
  <fieldset>
    <legend>Edit task {{.Form.ID}}</legend>
    <input type="hidden" name="id" value="{{.Form.ID}}">
    <label>Task Name
      <input name="title" value="{{.Form.Title}}" data-validate-name="title-error" data-todo-id="{{.Form.ID}}">
    </label>
    <span class="field-error" id="title-error">{{index .Errors "title"}}</span>
    <label>Priority
      <input name="priority" type="number" min="1" max="100" value="{{.Form.Priority}}">
    </label>
    <span class="field-error">{{index .Errors "priority"}}</span>
    <label>Status
      <select name="status">
      {{range .StatusOptions}}
        <option value="{{statusValue .}}"{{if eq (statusValue .) $.Form.Status}} selected{{end}}>{{statusLabel .}}</option>
      {{end}}
      </select>
    </label>
    <span class="field-error">{{index .Errors "status"}}</span>
    <button type="submit">Save</button>
    <a href="/web/todos">Back to list</a>
  </fieldset>
</form>
{{template "foot"}}`
