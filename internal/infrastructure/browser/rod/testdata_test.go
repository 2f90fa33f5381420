package rod

const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	FormHTML = `<!DOCTYPE html>
<html>
<body>
	<form id="testForm">
		<input id="username" type="text" name="username" />
		<input id="password" type="password" name="password" />
		<button id="submit" type="submit">Submit</button>
	</form>
</body>
</html>`

	InteractiveHTML = `<!DOCTYPE html>
<html>
<body>
	<button id="btn">  Click
		Me </button>
	<input id="name" type="text" />
	<div id="result"></div>
	<script>
		document.getElementById('btn').addEventListener('click', function() {
			document.getElementById('result').textContent = 'Clicked!';
		});
	</script>
</body>
</html>`
)

const (
	LongPageHTML = `<!DOCTYPE html>
<html>
<body style="margin:0; height:6000px;">
	<p id="deep" style="position:absolute; top:3500px; left:40px;">Far down</p>
</body>
</html>`

	CornerLinkHTML = `<!DOCTYPE html>
<html>
<body style="margin:0; padding-top:80px;">
	<a id="logo" href="/elsewhere" style="position:fixed; top:0; left:0; width:120px; height:60px;">Home</a>
	<input id="q" type="text" />
	<div id="clicks">0</div>
	<script>
		document.body.addEventListener('click', function() {
			const c = document.getElementById('clicks');
			c.textContent = String(Number(c.textContent) + 1);
		});
	</script>
</body>
</html>`
)
