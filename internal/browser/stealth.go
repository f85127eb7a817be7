package browser

// launchArgs turn off the blink automation flag and first-run noise.
var launchArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-gpu",
	"--disable-software-rasterizer",
	"--no-first-run",
	"--no-default-browser-check",
}

// ignoredDefaultArgs are playwright defaults that advertise automation.
var ignoredDefaultArgs = []string{"--enable-automation"}

// stealthScript runs before any page script in every frame.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`
