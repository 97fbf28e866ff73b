package watch

import (
	"html/template"
	"io"
)

// PageTemplate renders a Page. Overlays and the seek table are embedded as
// JSON for the player script.
var PageTemplate = template.Must(template.New(TemplateName).Parse(`<!DOCTYPE html>
<html lang="no">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="styles/main.css">
</head>
<body class="{{.BodyClass}}">
    <div class="container">
        <p class="error-message">{{.ErrorMessage}}</p>
        <div class="chapters">
            <select class="selectpicker">
                {{- range .Chapters}}
                <option>{{.Label}}</option>
                {{- end}}
            </select>
        </div>
        <div class="player">
            {{- if .SlidesFirst}}
            <div id="slides"></div>
            {{- end}}
            <video id="ourvideo" controls{{if .PosterURL}} poster="{{.PosterURL}}"{{end}}>
                {{- if .VideoURL}}
                <source src="{{.VideoURL}}">
                {{- end}}
            </video>
            {{- if not .SlidesFirst}}
            <div id="slides"></div>
            {{- end}}
        </div>
        {{- if .Loaded}}
        <div class="download" style="display: block">
            <a href="{{.VideoURL}}" download="{{.DownloadName}}" title="{{.DownloadTitle}}">Last ned video</a>
        </div>
        {{- else}}
        <div class="download">
            <a>Last ned video</a>
        </div>
        {{- end}}
    </div>
    <script src="{{.PlayerScriptURL}}"></script>
    {{- if .Loaded}}
    <script>
    (function() {
        'use strict';
        var overlays = {{.Overlays}};
        var chapters = {{.SeekTable}};
        var popcorn = Popcorn('#ourvideo');

        overlays.forEach(function(o) {
            popcorn.footnote(o);
        });

        var select = document.querySelector('.selectpicker');
        if (select) {
            select.addEventListener('change', function() {
                popcorn.currentTime(chapters[this.selectedIndex]);
            });
        }
    })();
    </script>
    {{- end}}
</body>
</html>
`))

// Render writes the page to w
func Render(w io.Writer, page *Page) error {
	return PageTemplate.Execute(w, page)
}
