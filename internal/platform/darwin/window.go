//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices -framework Foundation
#include <CoreGraphics/CoreGraphics.h>
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    char *title;
    pid_t pid;
    float x, y, width, height;
} SimWindowInfo;

// List on-screen layer-0 windows owned by the Simulator app.
static int cg_list_simulator_windows(SimWindowInfo **outWindows, int *outCount) {
    CFArrayRef windowList = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
        kCGNullWindowID);
    if (!windowList) return -1;

    CFIndex count = CFArrayGetCount(windowList);
    SimWindowInfo *windows = calloc(count > 0 ? count : 1, sizeof(SimWindowInfo));
    int n = 0;

    for (CFIndex i = 0; i < count; i++) {
        CFDictionaryRef info = CFArrayGetValueAtIndex(windowList, i);

        CFStringRef owner = CFDictionaryGetValue(info, kCGWindowOwnerName);
        if (!owner || CFStringCompare(owner, CFSTR("Simulator"), 0) != kCFCompareEqualTo) continue;

        int layer = -1;
        CFNumberRef layerRef = CFDictionaryGetValue(info, kCGWindowLayer);
        if (layerRef) CFNumberGetValue(layerRef, kCFNumberIntType, &layer);
        if (layer != 0) continue;

        CGRect bounds;
        CFDictionaryRef boundsRef = CFDictionaryGetValue(info, kCGWindowBounds);
        if (!boundsRef || !CGRectMakeWithDictionaryRepresentation(boundsRef, &bounds)) continue;

        char buf[512] = {0};
        CFStringRef name = CFDictionaryGetValue(info, kCGWindowName);
        if (name) CFStringGetCString(name, buf, sizeof(buf), kCFStringEncodingUTF8);

        int pid = 0;
        CFNumberRef pidRef = CFDictionaryGetValue(info, kCGWindowOwnerPID);
        if (pidRef) CFNumberGetValue(pidRef, kCFNumberIntType, &pid);

        windows[n].title = strdup(buf);
        windows[n].pid = (pid_t)pid;
        windows[n].x = bounds.origin.x;
        windows[n].y = bounds.origin.y;
        windows[n].width = bounds.size.width;
        windows[n].height = bounds.size.height;
        n++;
    }

    CFRelease(windowList);
    *outWindows = windows;
    *outCount = n;
    return 0;
}

static void cg_free_simulator_windows(SimWindowInfo *windows, int count) {
    for (int i = 0; i < count; i++) free(windows[i].title);
    free(windows);
}

// Depth-first search for the element whose subrole marks the device
// content area.
static int ax_find_content_group(AXUIElementRef element, int depth, CGRect *outFrame) {
    if (depth > 12) return -1;

    CFStringRef subrole = NULL;
    if (AXUIElementCopyAttributeValue(element, kAXSubroleAttribute, (CFTypeRef *)&subrole) == kAXErrorSuccess && subrole) {
        int match = CFStringCompare(subrole, CFSTR("iOSContentGroup"), 0) == kCFCompareEqualTo;
        CFRelease(subrole);
        if (match) {
            AXValueRef posValue = NULL, sizeValue = NULL;
            CGPoint pos; CGSize size;
            int ok = AXUIElementCopyAttributeValue(element, kAXPositionAttribute, (CFTypeRef *)&posValue) == kAXErrorSuccess
                  && AXUIElementCopyAttributeValue(element, kAXSizeAttribute, (CFTypeRef *)&sizeValue) == kAXErrorSuccess
                  && AXValueGetValue(posValue, kAXValueTypeCGPoint, &pos)
                  && AXValueGetValue(sizeValue, kAXValueTypeCGSize, &size);
            if (posValue) CFRelease(posValue);
            if (sizeValue) CFRelease(sizeValue);
            if (!ok) return -1;
            *outFrame = CGRectMake(pos.x, pos.y, size.width, size.height);
            return 0;
        }
    }

    CFArrayRef children = NULL;
    if (AXUIElementCopyAttributeValue(element, kAXChildrenAttribute, (CFTypeRef *)&children) != kAXErrorSuccess || !children) {
        return -1;
    }
    int rc = -1;
    CFIndex count = CFArrayGetCount(children);
    for (CFIndex i = 0; i < count && rc != 0; i++) {
        AXUIElementRef child = (AXUIElementRef)CFArrayGetValueAtIndex(children, i);
        rc = ax_find_content_group(child, depth + 1, outFrame);
    }
    CFRelease(children);
    return rc;
}

// Find the device content frame inside a Simulator window via the
// Accessibility API. windowTitle filters windows by substring when non-empty.
static int ax_content_frame(pid_t pid, const char *windowTitle, CGRect *outFrame) {
    AXUIElementRef app = AXUIElementCreateApplication(pid);
    if (!app) return -1;

    CFArrayRef axWindows = NULL;
    if (AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, (CFTypeRef *)&axWindows) != kAXErrorSuccess || !axWindows) {
        CFRelease(app);
        return -1;
    }

    int rc = -1;
    CFIndex count = CFArrayGetCount(axWindows);
    for (CFIndex i = 0; i < count && rc != 0; i++) {
        AXUIElementRef win = (AXUIElementRef)CFArrayGetValueAtIndex(axWindows, i);
        if (windowTitle && windowTitle[0]) {
            CFStringRef title = NULL;
            if (AXUIElementCopyAttributeValue(win, kAXTitleAttribute, (CFTypeRef *)&title) == kAXErrorSuccess && title) {
                CFStringRef want = CFStringCreateWithCString(NULL, windowTitle, kCFStringEncodingUTF8);
                CFRange found = CFStringFind(title, want, kCFCompareCaseInsensitive);
                CFRelease(want);
                CFRelease(title);
                if (found.location == kCFNotFound) continue;
            }
        }
        rc = ax_find_content_group(win, 0, outFrame);
    }

    CFRelease(axWindows);
    CFRelease(app);
    return rc;
}
*/
import "C"

import (
	"context"
	"strings"
	"unsafe"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/logger"
	"github.com/axsim/sim-cli/internal/platform"
)

// Fallback bezel estimates used when the accessibility content frame is
// unavailable. Measured against default Simulator window chrome.
const (
	fallbackTitleBarHeight = 28
	fallbackTopBezel       = 50
	fallbackSideBezel      = 20
)

// WindowLocator finds Simulator host windows on screen.
type WindowLocator struct{}

// NewWindowLocator creates a CoreGraphics-backed window locator.
func NewWindowLocator() *WindowLocator {
	return &WindowLocator{}
}

// deviceWindowTitle maps a UDID to the device name shown in the window
// title bar. Empty udid returns empty, matching any window.
func deviceWindowTitle(ctx context.Context, udid string) string {
	if udid == "" {
		return ""
	}
	dm := NewDeviceManager()
	dev, err := dm.resolve(ctx, udid)
	if err != nil {
		return ""
	}
	return dev.Name
}

// LocateWindow finds the Simulator window presenting the given device and
// resolves its content area. The content frame comes from the window's
// accessibility tree; if that lookup fails, bezel estimates are used.
func (l *WindowLocator) LocateWindow(ctx context.Context, udid string) (platform.WindowInfo, error) {
	var cWindows *C.SimWindowInfo
	var cCount C.int
	if C.cg_list_simulator_windows(&cWindows, &cCount) != 0 {
		return platform.WindowInfo{}, platform.Errorf(platform.CategoryInternal,
			"failed to enumerate windows")
	}
	defer C.cg_free_simulator_windows(cWindows, cCount)

	count := int(cCount)
	if count == 0 {
		return platform.WindowInfo{}, platform.Errorf(platform.CategoryNotFound,
			"no Simulator window found: is the Simulator app visible on screen?")
	}

	wantTitle := deviceWindowTitle(ctx, udid)
	cSlice := unsafe.Slice(cWindows, count)

	// Prefer the window whose title names the device; otherwise take the
	// frontmost Simulator window.
	selected := 0
	if wantTitle != "" {
		for i := 0; i < count; i++ {
			if strings.Contains(strings.ToLower(C.GoString(cSlice[i].title)), strings.ToLower(wantTitle)) {
				selected = i
				break
			}
		}
	}

	cw := cSlice[selected]
	info := platform.WindowInfo{
		Title: C.GoString(cw.title),
		PID:   int(cw.pid),
		Bounds: geometry.Rect{
			X:      float64(cw.x),
			Y:      float64(cw.y),
			Width:  float64(cw.width),
			Height: float64(cw.height),
		},
	}
	info.Content = l.contentFrame(ctx, info, wantTitle)
	return info, nil
}

// contentFrame resolves the device content region within the window.
func (l *WindowLocator) contentFrame(ctx context.Context, info platform.WindowInfo, wantTitle string) geometry.Rect {
	if IsAccessibilityTrusted() {
		var cTitle *C.char
		if wantTitle != "" {
			cTitle = C.CString(wantTitle)
			defer C.free(unsafe.Pointer(cTitle))
		}
		var frame C.CGRect
		if C.ax_content_frame(C.pid_t(info.PID), cTitle, &frame) == 0 {
			return geometry.Rect{
				X:      float64(frame.origin.x),
				Y:      float64(frame.origin.y),
				Width:  float64(frame.size.width),
				Height: float64(frame.size.height),
			}
		}
	}
	logger.G(ctx).Debug("content area lookup failed, using bezel estimates")
	return geometry.Rect{
		X:      info.Bounds.X + fallbackSideBezel,
		Y:      info.Bounds.Y + fallbackTitleBarHeight + fallbackTopBezel,
		Width:  info.Bounds.Width - 2*fallbackSideBezel,
		Height: info.Bounds.Height - fallbackTitleBarHeight - fallbackTopBezel - fallbackSideBezel,
	}
}
