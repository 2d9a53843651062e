package pdfcap

// pymupdfHelperScript is the Python helper driving PyMuPDF on behalf of the
// Go side. It reads one JSON request per line on stdin and writes one JSON
// response per line on stdout; each request maps to a single capability
// primitive.
const pymupdfHelperScript = `#!/usr/bin/env python3
# -*- coding: utf-8 -*-
import sys
import json

try:
    import pymupdf
except ImportError:
    try:
        import fitz as pymupdf
    except ImportError:
        print(json.dumps({"ok": False, "error": "PyMuPDF not installed"}))
        sys.exit(1)

doc = None


def handle(req):
    global doc
    op = req["op"]
    if op == "open":
        doc = pymupdf.open(req["path"])
        return {"ok": True, "pages": doc.page_count}
    if op == "search":
        page = doc[req["page"]]
        rects = page.search_for(req["text"])
        return {"ok": True, "boxes": [[r.x0, r.y0, r.x1, r.y1] for r in rects]}
    if op == "redact":
        page = doc[req["page"]]
        b = req["box"]
        rect = pymupdf.Rect(b[0], b[1], b[2], b[3])
        page.add_redact_annot(rect, text=req.get("fill", ""))
        return {"ok": True}
    if op == "apply":
        doc[req["page"]].apply_redactions()
        return {"ok": True}
    if op == "spans":
        page = doc[req["page"]]
        spans = []
        for block in page.get_text("dict")["blocks"]:
            for line in block.get("lines", []):
                for span in line["spans"]:
                    spans.append({"text": span["text"], "size": span["size"]})
        return {"ok": True, "spans": spans}
    if op == "insert":
        page = doc[req["page"]]
        at = req["at"]
        color = tuple(req.get("color", [0, 0, 0]))
        page.insert_text(
            pymupdf.Point(at[0], at[1]),
            req["text"],
            fontsize=req["size"],
            color=color,
        )
        return {"ok": True}
    if op == "save":
        doc.save(req["path"])
        return {"ok": True}
    if op == "close":
        if doc is not None:
            doc.close()
            doc = None
        return {"ok": True}
    raise ValueError("unknown op: %s" % op)


def main():
    for raw in sys.stdin:
        raw = raw.strip()
        if not raw:
            continue
        req = json.loads(raw)
        try:
            resp = handle(req)
        except Exception as exc:
            resp = {"ok": False, "error": str(exc)}
        sys.stdout.write(json.dumps(resp) + "\n")
        sys.stdout.flush()
        if req.get("op") == "close":
            return


if __name__ == "__main__":
    main()
`
