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
    int id;
    int parentID;
    char *role;
    char *subrole;
    char *title;
    char *value;
    char *description;
    char *identifier;
    float x, y, width, height;
    int enabled;
    int focused;
    int truncated;
} AXNodeInfo;

typedef struct {
    AXNodeInfo *nodes;
    int count;
    int capacity;
    int nextID;
} AXNodeBuffer;

static char *ax_copy_string_attr(AXUIElementRef element, CFStringRef attr) {
    CFTypeRef value = NULL;
    if (AXUIElementCopyAttributeValue(element, attr, &value) != kAXErrorSuccess || !value) {
        return strdup("");
    }
    char buf[1024] = {0};
    if (CFGetTypeID(value) == CFStringGetTypeID()) {
        CFStringGetCString((CFStringRef)value, buf, sizeof(buf), kCFStringEncodingUTF8);
    } else {
        CFStringRef desc = CFCopyDescription(value);
        if (desc) {
            CFStringGetCString(desc, buf, sizeof(buf), kCFStringEncodingUTF8);
            CFRelease(desc);
        }
    }
    CFRelease(value);
    return strdup(buf);
}

static int ax_copy_bool_attr(AXUIElementRef element, CFStringRef attr, int fallback) {
    CFTypeRef value = NULL;
    if (AXUIElementCopyAttributeValue(element, attr, &value) != kAXErrorSuccess || !value) {
        return fallback;
    }
    int result = fallback;
    if (CFGetTypeID(value) == CFBooleanGetTypeID()) {
        result = CFBooleanGetValue((CFBooleanRef)value) ? 1 : 0;
    }
    CFRelease(value);
    return result;
}

static int ax_copy_frame(AXUIElementRef element, CGRect *outFrame) {
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

static int ax_buffer_append(AXNodeBuffer *buf) {
    if (buf->count == buf->capacity) {
        int newCap = buf->capacity == 0 ? 64 : buf->capacity * 2;
        AXNodeInfo *grown = realloc(buf->nodes, newCap * sizeof(AXNodeInfo));
        if (!grown) return -1;
        buf->nodes = grown;
        buf->capacity = newCap;
    }
    memset(&buf->nodes[buf->count], 0, sizeof(AXNodeInfo));
    return buf->count++;
}

// Walk the element subtree depth-first, appending nodes to buf. Children
// past maxDepth are not visited; their parent is marked truncated.
static int ax_walk(AXUIElementRef element, int parentID, int depth, int maxDepth, AXNodeBuffer *buf) {
    int idx = ax_buffer_append(buf);
    if (idx < 0) return -1;

    int id = buf->nextID++;
    CGRect frame = CGRectZero;
    ax_copy_frame(element, &frame);

    buf->nodes[idx].id = id;
    buf->nodes[idx].parentID = parentID;
    buf->nodes[idx].role = ax_copy_string_attr(element, kAXRoleAttribute);
    buf->nodes[idx].subrole = ax_copy_string_attr(element, kAXSubroleAttribute);
    buf->nodes[idx].title = ax_copy_string_attr(element, kAXTitleAttribute);
    buf->nodes[idx].value = ax_copy_string_attr(element, kAXValueAttribute);
    buf->nodes[idx].description = ax_copy_string_attr(element, kAXDescriptionAttribute);
    buf->nodes[idx].identifier = ax_copy_string_attr(element, CFSTR("AXIdentifier"));
    buf->nodes[idx].x = frame.origin.x;
    buf->nodes[idx].y = frame.origin.y;
    buf->nodes[idx].width = frame.size.width;
    buf->nodes[idx].height = frame.size.height;
    buf->nodes[idx].enabled = ax_copy_bool_attr(element, kAXEnabledAttribute, 1);
    buf->nodes[idx].focused = ax_copy_bool_attr(element, kAXFocusedAttribute, 0);

    CFArrayRef children = NULL;
    if (AXUIElementCopyAttributeValue(element, kAXChildrenAttribute, (CFTypeRef *)&children) != kAXErrorSuccess || !children) {
        return 0;
    }
    CFIndex count = CFArrayGetCount(children);
    if (depth >= maxDepth) {
        if (count > 0) buf->nodes[idx].truncated = 1;
        CFRelease(children);
        return 0;
    }
    for (CFIndex i = 0; i < count; i++) {
        AXUIElementRef child = (AXUIElementRef)CFArrayGetValueAtIndex(children, i);
        if (ax_walk(child, id, depth + 1, maxDepth, buf) != 0) {
            CFRelease(children);
            return -1;
        }
    }
    CFRelease(children);
    return 0;
}

// Locate the content group inside a window element. Returns a retained
// element, or NULL when absent. The single retain happens at the match
// site so the result carries exactly one reference regardless of depth.
static AXUIElementRef ax_locate_content_group(AXUIElementRef element, int depth) {
    if (depth > 12) return NULL;
    CFStringRef subrole = NULL;
    if (AXUIElementCopyAttributeValue(element, kAXSubroleAttribute, (CFTypeRef *)&subrole) == kAXErrorSuccess && subrole) {
        int match = CFStringCompare(subrole, CFSTR("iOSContentGroup"), 0) == kCFCompareEqualTo;
        CFRelease(subrole);
        if (match) {
            CFRetain(element);
            return element;
        }
    }
    CFArrayRef children = NULL;
    if (AXUIElementCopyAttributeValue(element, kAXChildrenAttribute, (CFTypeRef *)&children) != kAXErrorSuccess || !children) {
        return NULL;
    }
    AXUIElementRef found = NULL;
    CFIndex count = CFArrayGetCount(children);
    for (CFIndex i = 0; i < count && !found; i++) {
        AXUIElementRef child = (AXUIElementRef)CFArrayGetValueAtIndex(children, i);
        found = ax_locate_content_group(child, depth + 1);
    }
    CFRelease(children);
    return found;
}

// Read the accessibility tree of a Simulator window into a flat node
// array. includeChrome walks from the window itself; otherwise the walk
// starts at the device content group.
static int ax_read_tree(pid_t pid, const char *windowTitle, int includeChrome,
                        int maxDepth, AXNodeInfo **outNodes, int *outCount) {
    AXUIElementRef app = AXUIElementCreateApplication(pid);
    if (!app) return -1;

    CFArrayRef axWindows = NULL;
    if (AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, (CFTypeRef *)&axWindows) != kAXErrorSuccess || !axWindows) {
        CFRelease(app);
        return -1;
    }

    AXUIElementRef target = NULL;
    CFIndex count = CFArrayGetCount(axWindows);
    for (CFIndex i = 0; i < count && !target; i++) {
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
        target = win;
        CFRetain(target);
    }
    CFRelease(axWindows);

    if (!target) {
        CFRelease(app);
        return -2;
    }

    AXUIElementRef root = target;
    if (!includeChrome) {
        AXUIElementRef content = ax_locate_content_group(target, 0);
        if (!content) {
            CFRelease(target);
            CFRelease(app);
            return -3;
        }
        root = content;
    }

    AXNodeBuffer buf = {0};
    int rc = ax_walk(root, -1, 0, maxDepth, &buf);

    if (root != target) CFRelease(root);
    CFRelease(target);
    CFRelease(app);

    if (rc != 0) {
        *outNodes = buf.nodes;
        *outCount = buf.count;
        return -1;
    }
    *outNodes = buf.nodes;
    *outCount = buf.count;
    return 0;
}

static void ax_free_tree(AXNodeInfo *nodes, int count) {
    for (int i = 0; i < count; i++) {
        free(nodes[i].role);
        free(nodes[i].subrole);
        free(nodes[i].title);
        free(nodes[i].value);
        free(nodes[i].description);
        free(nodes[i].identifier);
    }
    free(nodes);
}
*/
import "C"

import (
	"context"
	"time"
	"unsafe"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/model"
	"github.com/axsim/sim-cli/internal/platform"
)

// defaultMaxDepth bounds the tree walk. Deep SwiftUI hierarchies rarely
// carry useful structure past this.
const defaultMaxDepth = 20

// TreeCapturer reads the Simulator's accessibility tree.
type TreeCapturer struct {
	devices *DeviceManager
	windows *WindowLocator
}

// NewTreeCapturer creates an accessibility-backed tree capturer.
func NewTreeCapturer(devices *DeviceManager, windows *WindowLocator) *TreeCapturer {
	return &TreeCapturer{devices: devices, windows: windows}
}

// CaptureTree walks the accessibility tree of the device's host window and
// returns it as a snapshot with element frames in device points.
func (t *TreeCapturer) CaptureTree(ctx context.Context, opts platform.SnapshotOptions) (*model.Snapshot, error) {
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}

	dev, err := t.devices.resolve(ctx, opts.UDID)
	if err != nil {
		return nil, err
	}
	geo, err := t.devices.DeviceGeometry(ctx, dev.UDID)
	if err != nil {
		return nil, err
	}
	win, err := t.windows.LocateWindow(ctx, dev.UDID)
	if err != nil {
		return nil, err
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	cTitle := C.CString(dev.Name)
	defer C.free(unsafe.Pointer(cTitle))

	includeChrome := C.int(0)
	if opts.IncludeChrome {
		includeChrome = 1
	}

	var cNodes *C.AXNodeInfo
	var cCount C.int
	rc := C.ax_read_tree(C.pid_t(win.PID), cTitle, includeChrome, C.int(maxDepth), &cNodes, &cCount)
	defer C.ax_free_tree(cNodes, cCount)

	switch rc {
	case 0:
	case -2:
		return nil, platform.Errorf(platform.CategoryNotFound,
			"no accessible window found for device %s", dev.Name)
	case -3:
		return nil, platform.Errorf(platform.CategoryNotFound,
			"could not find device content area: the simulator window may not be fully loaded")
	default:
		return nil, platform.Errorf(platform.CategoryInternal,
			"failed to read accessibility tree for PID %d", win.PID)
	}

	root := buildElementTree(cNodes, cCount, win.Content, geo)
	if root == nil {
		return nil, platform.Errorf(platform.CategoryInternal, "accessibility tree is empty")
	}

	return &model.Snapshot{
		Target:     "simulator",
		Device:     dev.Name,
		CapturedAt: time.Now().UTC(),
		Geometry:   geo,
		Root:       *root,
	}, nil
}

// buildElementTree converts the flat C node array into a nested element
// tree, translating frames from host screen coordinates to device points.
func buildElementTree(cNodes *C.AXNodeInfo, cCount C.int, content geometry.Rect, geo geometry.ScreenGeometry) *model.ElementNode {
	count := int(cCount)
	if count == 0 {
		return nil
	}
	cSlice := unsafe.Slice(cNodes, count)

	scale := geo.WindowScale
	if scale <= 0 {
		scale = 1
	}

	nodes := make([]model.ElementNode, count)
	childIDs := make(map[int][]int, count)
	indexByID := make(map[int]int, count)
	rootID := -1

	for i := 0; i < count; i++ {
		cn := cSlice[i]
		id := int(cn.id)
		indexByID[id] = i

		var enabled *bool
		if cn.enabled == 0 {
			f := false
			enabled = &f
		}

		nodes[i] = model.ElementNode{
			Role:        model.MapRole(C.GoString(cn.role)),
			Label:       C.GoString(cn.title),
			Value:       C.GoString(cn.value),
			Description: C.GoString(cn.description),
			Identifier:  C.GoString(cn.identifier),
			Frame: geometry.Rect{
				X:      (float64(cn.x) - content.X) / scale,
				Y:      (float64(cn.y) - content.Y) / scale,
				Width:  float64(cn.width) / scale,
				Height: float64(cn.height) / scale,
			},
			Enabled:   enabled,
			Focused:   cn.focused != 0,
			Truncated: cn.truncated != 0,
		}

		parentID := int(cn.parentID)
		if parentID < 0 {
			rootID = id
		} else {
			childIDs[parentID] = append(childIDs[parentID], id)
		}
	}

	var build func(id int) model.ElementNode
	build = func(id int) model.ElementNode {
		node := nodes[indexByID[id]]
		for _, childID := range childIDs[id] {
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	if rootID < 0 {
		return nil
	}
	root := build(rootID)
	return &root
}
